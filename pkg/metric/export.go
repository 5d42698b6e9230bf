package metric

import (
	"fmt"
	"os"
	"sync"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/fit"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	TimingsSuffix = "_timings.csv"
	ScoresSuffix  = "_scores.csv"
)

type Exporter struct {
	mutex         sync.Mutex
	runID         string
	timingRecords []TimingRecord
	scoreRecords  []ScoreRecord
}

func NewExporter() *Exporter {
	return &Exporter{
		runID:         uuid.New().String(),
		timingRecords: []TimingRecord{},
		scoreRecords:  []ScoreRecord{},
	}
}

func (ep *Exporter) RunID() string {
	return ep.runID
}

func (ep *Exporter) ReportMatrix(m *common.TimingMatrix) {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()

	for i := 0; i < m.Rows(); i++ {
		for rep := 0; rep < m.Repetitions(); rep++ {
			ep.timingRecords = append(ep.timingRecords, TimingRecord{
				RunID:      ep.runID,
				Row:        i,
				Size:       m.Sizes[i],
				Repetition: rep,
				Time:       m.At(i, rep),
			})
		}
	}
}

// ReportFit records every candidate, ranked by descending score.
func (ep *Exporter) ReportFit(res *fit.Result) {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()

	byName := make(map[string]fit.FitResult, len(res.Fits))
	for _, f := range res.Fits {
		byName[f.Name] = f
	}

	for rank, s := range res.Scores() {
		f := byName[s.Name]

		record := ScoreRecord{
			RunID:       ep.runID,
			Rank:        rank + 1,
			Name:        f.Name,
			Objective:   res.Objective,
			Coefficient: f.Coefficient,
			Residual:    f.Residual,
			LogResidual: f.LogResidual,
			Score:       f.Score,
		}
		if f.Err != nil {
			record.Error = f.Err.Error()
		}

		ep.scoreRecords = append(ep.scoreRecords, record)
	}
}

func (ep *Exporter) GetTimingRecordLen() int {
	return len(ep.timingRecords)
}

func (ep *Exporter) GetScoreRecordLen() int {
	return len(ep.scoreRecords)
}

// FinishAndSave writes <prefix>_timings.csv and, when a fit was reported,
// <prefix>_scores.csv.
func (ep *Exporter) FinishAndSave(prefix string) error {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()

	if err := marshalFile(prefix+TimingsSuffix, &ep.timingRecords); err != nil {
		return err
	}

	if len(ep.scoreRecords) > 0 {
		if err := marshalFile(prefix+ScoresSuffix, &ep.scoreRecords); err != nil {
			return err
		}
	}

	log.Infof("Run %s exported with prefix %s", ep.runID, prefix)
	return nil
}

func marshalFile(path string, records interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(records, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// ReadTimingMatrix rebuilds a timing matrix from a timings CSV written by
// FinishAndSave. The stored values are used as is.
func ReadTimingMatrix(path string) (*common.TimingMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []TimingRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, common.ErrEmptyInputSizes)
	}

	rows, repetitions := 0, 0
	for _, r := range records {
		rows = common.MaxOf(rows, r.Row+1)
		repetitions = common.MaxOf(repetitions, r.Repetition+1)
	}

	sizes := make([]int, rows)
	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, repetitions)
	}

	for _, r := range records {
		if r.Row < 0 || r.Repetition < 0 {
			return nil, fmt.Errorf("%s: negative row or repetition index", path)
		}
		sizes[r.Row] = r.Size
		data[r.Row][r.Repetition] = r.Time
	}

	if err := common.ValidateInputSizes(sizes); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return common.NewTimingMatrixFromRows(sizes, data)
}
