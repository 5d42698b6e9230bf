package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/eth-easl/complexitygraph/pkg/config"
	"github.com/eth-easl/complexitygraph/pkg/driver"
	"github.com/eth-easl/complexitygraph/pkg/workload"

	log "github.com/sirupsen/logrus"

	tracer "github.com/ease-lab/vhive/utils/tracing/go"
)

const (
	zipkinAddr = "http://localhost:9411/api/v2/spans"
)

var (
	configPath   = flag.String("config", "cmd/config.json", "Path to complexity configuration file")
	verbosity    = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
	workloadName = flag.String("workload", "", "Built-in workload to measure, overrides the configuration file")
	outputDir    = flag.String("outputDir", "", "Directory for the plot and CSV files, overrides the configuration file")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cfg := config.ReadConfigurationFile(*configPath)

	if cfg.EnableZipkinTracing {
		shutdown, err := tracer.InitBasicTracer(zipkinAddr, "complexitygraph")
		if err != nil {
			log.Print(err)
		} else {
			defer shutdown()
		}
	}

	if *workloadName != "" {
		cfg.Workload = *workloadName
	}
	if *outputDir != "" {
		cfg.OutputPathPrefix = filepath.Join(*outputDir, filepath.Base(cfg.OutputPathPrefix))
	}

	w, err := workload.Lookup(cfg.Workload)
	if err != nil {
		log.Fatal(err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	experimentDriver := driver.NewDriver(&driver.DriverConfiguration{
		ComplexityConfiguration: &cfg,
		Name:                    w.Name,
		Target:                  w.Target,
	})

	scores, err := experimentDriver.RunExperiment(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	top := scores.Top()
	if top.Name != w.Expected {
		log.Warnf("Workload %s is expected to grow as %s but %s scored highest.", w.Name, w.Expected, top.Name)
	}
}
