package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/fit"
	"github.com/eth-easl/complexitygraph/pkg/graph"
	"github.com/eth-easl/complexitygraph/pkg/metric"
	"github.com/eth-easl/complexitygraph/pkg/report"
	log "github.com/sirupsen/logrus"
)

type Record struct {
	name   string
	matrix *common.TimingMatrix
}

func main() {
	var (
		inputDir   = flag.String("i", "data/out", "Path to the directory with exported timing CSV files")
		outputDir  = flag.String("o", "figs", "Path to the directory for output figures")
		objective  = flag.String("objective", common.ObjectiveSquared, "Fit objective: squared, exp-squared")
		debugLevel = flag.String("d", "info", "Debug level: info, debug")
	)
	flag.Parse()
	log.SetOutput(os.Stdout)

	switch *debugLevel {
	case "info":
		log.SetLevel(log.InfoLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug mode is enabled")
	}

	o, err := fit.ObjectiveByName(*objective)
	if err != nil {
		log.Fatal(err)
	}

	records := parseFiles(*inputDir)
	log.Info("The number of timing exports found is: ", len(records))

	plotFig(*outputDir, records, fit.NewFitter(fit.WithObjective(o)))
}

func plotFig(outputDir string, records []Record, fitter *fit.Fitter) {
	if _, err := os.Stat(outputDir); errors.Is(err, os.ErrNotExist) {
		log.Info("Creating the output directory")
		err := os.MkdirAll(outputDir, os.ModePerm)
		if err != nil {
			log.Fatal(err)
		}
	}

	for _, rec := range records {
		res, err := fitter.Fit(rec.matrix.Sizes, rec.matrix)
		if err != nil {
			log.Errorf("Cannot fit %s: %v", rec.name, err)
			continue
		}

		if err := report.WriteScores(os.Stdout, rec.name, res.Scores()); err != nil {
			log.Fatal(err)
		}

		if err := graph.SaveComplexity(filepath.Join(outputDir, rec.name+".png"), res, rec.matrix, true); err != nil {
			log.Fatal(err)
		}
		log.Debug("Plotted ", rec.name)
	}
}

func parseFiles(inputDir string) []Record {
	files, err := os.ReadDir(inputDir)
	if err != nil {
		log.Fatal("Cannot open the input directory:", err)
	}

	filePattern, err := regexp.Compile(`^(.+)` + regexp.QuoteMeta(metric.TimingsSuffix) + `$`)
	if err != nil {
		log.Fatal("Error compiling: ", err)
	}

	var recs []Record
	for _, file := range files {
		if matched := filePattern.MatchString(file.Name()); !matched {
			continue
		}

		log.Debug("Open file ", file.Name())

		match := filePattern.FindStringSubmatch(file.Name())
		m, err := metric.ReadTimingMatrix(filepath.Join(inputDir, file.Name()))
		if err != nil {
			log.Warn("Skipping unreadable export: ", err)
			continue
		}

		recs = append(recs, Record{
			name:   match[1],
			matrix: m,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].name < recs[j].name
	})

	return recs
}
