package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/config"
	"github.com/eth-easl/complexitygraph/pkg/fit"
	"github.com/eth-easl/complexitygraph/pkg/graph"
	"github.com/eth-easl/complexitygraph/pkg/measure"
	"github.com/eth-easl/complexitygraph/pkg/metric"
	"github.com/eth-easl/complexitygraph/pkg/report"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "complexitygraph"

type DriverConfiguration struct {
	ComplexityConfiguration *config.ComplexityConfiguration

	// Name is echoed in the report header.
	Name   string
	Target measure.Target
	Setup  measure.Setup

	// Output receives progress markers and the score report. Defaults to stdout.
	Output io.Writer

	// Timer and Sleep replace the wall clock, for tests.
	Timer measure.Timer
	Sleep func(time.Duration)
}

type Driver struct {
	Configuration *DriverConfiguration

	matrix *common.TimingMatrix
	result *fit.Result
}

func NewDriver(driverConfig *DriverConfiguration) *Driver {
	return &Driver{
		Configuration: driverConfig,
	}
}

func (d *Driver) Matrix() *common.TimingMatrix {
	return d.matrix
}

func (d *Driver) Result() *fit.Result {
	return d.result
}

// OutputPrefix is the path prefix shared by the plot and the CSV files.
func (d *Driver) OutputPrefix() string {
	return fmt.Sprintf("%s_%s", d.Configuration.ComplexityConfiguration.OutputPathPrefix, d.Configuration.Name)
}

// RunExperiment measures the target, scores the candidate curves, prints the
// report and, if enabled, writes the plot and the CSV export.
func (d *Driver) RunExperiment(ctx context.Context) (fit.ScoreDistribution, error) {
	cfg := d.Configuration.ComplexityConfiguration
	if cfg == nil {
		return nil, fmt.Errorf("%w: missing complexity configuration", common.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	objective, err := fit.ObjectiveByName(cfg.Objective)
	if err != nil {
		return nil, err
	}

	out := d.Configuration.Output
	if out == nil {
		out = os.Stdout
	}

	sizes := cfg.Sizes()
	log.Infof("Measuring %s over %d input sizes, %d repetitions of %d calls.", d.Configuration.Name, len(sizes), cfg.Repetitions, cfg.Number)

	collectorConfig := cfg.CollectorConfiguration()
	collectorConfig.Setup = d.Configuration.Setup
	collectorConfig.Progress = out
	collectorConfig.Timer = d.Configuration.Timer
	collectorConfig.Sleep = d.Configuration.Sleep

	_, span := d.startSpan(ctx, "measure")
	d.matrix, err = measure.NewCollector(collectorConfig).Measure(d.Configuration.Target, sizes)
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	_, span = d.startSpan(ctx, "fit")
	d.result, err = fit.NewFitter(fit.WithObjective(objective)).Fit(sizes, d.matrix)
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	scores := d.result.Scores()

	_, span = d.startSpan(ctx, "report")
	err = report.WriteScores(out, d.Configuration.Name, scores)
	if err == nil {
		err = d.writeArtifacts(cfg)
	}
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	return scores, nil
}

func (d *Driver) writeArtifacts(cfg *config.ComplexityConfiguration) error {
	if !cfg.EnablePlot && !cfg.EnableExport {
		return nil
	}

	prefix := d.OutputPrefix()
	if err := os.MkdirAll(filepath.Dir(prefix), os.ModePerm); err != nil {
		return err
	}

	if cfg.EnablePlot {
		if err := graph.SaveComplexity(prefix+".png", d.result, d.matrix, true); err != nil {
			return err
		}
	}

	if cfg.EnableExport {
		exporter := metric.NewExporter()
		exporter.ReportMatrix(d.matrix)
		exporter.ReportFit(d.result)

		if err := exporter.FinishAndSave(prefix); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	return otel.Tracer(tracerName).Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
