package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sartorproj/goflux/dataset"
	"github.com/sartorproj/goflux/regression"
	"github.com/sartorproj/goflux/stats"
	"github.com/sartorproj/goflux/timeseries"
)

// DefaultHistogramBins is the number of flux histogram bins.
const DefaultHistogramBins = 20

// Results collects the output of one run. A field is nil when its
// component produced nothing, for example Model after a failed fit.
type Results struct {
	RunID       string
	Source      string
	Rows        int
	GeneratedAt time.Time

	Flux      *timeseries.Series
	Summary   *stats.Summary
	Histogram *stats.Histogram

	Coverage []stats.YearCoverage

	Seasonal      *stats.SeasonalCycle
	Monthly       *timeseries.Series
	Decomposition *stats.Decomposition

	Model       *regression.Model
	Diagnostics *regression.Summary

	// Errors holds the failure of each component that did not complete.
	Errors []error
}

// Err joins the component failures. Returns nil when every component
// succeeded.
func (r *Results) Err() error {
	return errors.Join(r.Errors...)
}

// Runner sequences the four analyses over one table. Each component runs
// regardless of whether the others failed.
type Runner struct {
	Plotter       Plotter
	Logger        *slog.Logger
	HistogramBins int
}

// NewRunner creates a runner. A nil plotter discards figures and a nil
// logger discards log output.
func NewRunner(p Plotter, logger *slog.Logger) *Runner {
	if p == nil {
		p = NopPlotter{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{Plotter: p, Logger: logger, HistogramBins: DefaultHistogramBins}
}

// Run executes summary, coverage, seasonal and regression analyses in that
// order. The returned error joins every component failure; the Results are
// always non-nil and hold whatever succeeded.
func (r *Runner) Run(tbl *dataset.Table) (*Results, error) {
	res := &Results{
		RunID:       uuid.NewString(),
		Source:      tbl.Source(),
		Rows:        tbl.Len(),
		GeneratedAt: time.Now().UTC(),
	}
	log := r.Logger.With("run_id", res.RunID)

	if err := tbl.Validate(); err != nil {
		log.Warn("table has no observations", "source", res.Source, "error", err)
	}

	r.summary(log, tbl, res)
	r.coverage(log, tbl, res)
	r.seasonal(log, tbl, res)
	r.fit(log, tbl, res)

	err := res.Err()
	if err != nil {
		log.Error("run finished with errors", "failed", len(res.Errors))
	} else {
		log.Info("run finished", "rows", res.Rows)
	}
	return res, err
}

func (r *Runner) summary(log *slog.Logger, tbl *dataset.Table, res *Results) {
	log = log.With("component", "summary")

	res.Flux = tbl.Series(dataset.ColFlux)
	res.Summary = stats.Describe(res.Flux)
	res.Histogram = stats.NewHistogram(res.Flux.Values, r.bins())

	log.Info("summary statistics",
		"n", res.Summary.N,
		"mean", res.Summary.Mean,
		"median", res.Summary.Median,
		"std", res.Summary.Std)

	if res.Summary.N == 0 {
		return
	}
	if err := r.Plotter.PlotFlux(res.Flux.Copy(), copyHistogram(res.Histogram)); err != nil {
		r.fail(log, res, fmt.Errorf("plot flux: %w", err))
	}
}

func (r *Runner) coverage(log *slog.Logger, tbl *dataset.Table, res *Results) {
	log = log.With("component", "coverage")

	res.Coverage = stats.AuditCoverage(tbl.Years())

	total := 0
	for _, yc := range res.Coverage {
		total += yc.Missing
		if yc.Missing != 0 {
			log.Debug("year coverage", "year", yc.Year, "observed", yc.Observed, "missing", yc.Missing)
		}
	}
	log.Info("coverage audit", "years", len(res.Coverage), "missing_days", total)
}

func (r *Runner) seasonal(log *slog.Logger, tbl *dataset.Table, res *Results) {
	log = log.With("component", "seasonal")

	res.Seasonal = stats.MonthlyMeans(tbl.Months(), tbl.Column(dataset.ColFlux))
	res.Monthly = MonthlySeries(tbl)
	res.Decomposition = stats.Decompose(res.Monthly, 12)

	empty := 0
	for _, m := range res.Seasonal.Means {
		if math.IsNaN(m) {
			empty++
		}
	}
	log.Info("seasonal cycle", "months_without_data", empty, "decomposed", res.Decomposition != nil)

	if tbl.Len() == 0 {
		return
	}
	cycle := *res.Seasonal
	if err := r.Plotter.PlotSeasonal(&cycle); err != nil {
		r.fail(log, res, fmt.Errorf("plot seasonal cycle: %w", err))
	}
	if res.Decomposition != nil {
		if err := r.Plotter.PlotDecomposition(copyDecomposition(res.Decomposition)); err != nil {
			r.fail(log, res, fmt.Errorf("plot decomposition: %w", err))
		}
	}
}

func (r *Runner) fit(log *slog.Logger, tbl *dataset.Table, res *Results) {
	log = log.With("component", "regression")

	model, err := Regress(tbl)
	if err != nil {
		r.fail(log, res, err)
		return
	}
	res.Model = model
	res.Diagnostics = model.Summary()

	attrs := []any{"n", model.N, "correlation", model.Correlation, "r_squared", model.RSquared}
	for j, name := range model.Names {
		attrs = append(attrs, name, model.Coefficients[j])
	}
	log.Info("regression fitted", attrs...)

	if err := r.Plotter.PlotRegression(res.Flux.Copy(), copyModel(model)); err != nil {
		r.fail(log, res, fmt.Errorf("plot regression: %w", err))
	}
}

func (r *Runner) fail(log *slog.Logger, res *Results, err error) {
	log.Error("component failed", "error", err)
	res.Errors = append(res.Errors, err)
}

// The plotter only ever sees copies, so a misbehaving implementation cannot
// change the results.

func copyHistogram(h *stats.Histogram) *stats.Histogram {
	if h == nil {
		return nil
	}
	c := *h
	c.Edges = slices.Clone(h.Edges)
	c.Counts = slices.Clone(h.Counts)
	c.Density = slices.Clone(h.Density)
	return &c
}

func copyDecomposition(d *stats.Decomposition) *stats.Decomposition {
	return &stats.Decomposition{
		Original: d.Original.Copy(),
		Trend:    d.Trend.Copy(),
		Seasonal: d.Seasonal.Copy(),
		Residual: d.Residual.Copy(),
		Period:   d.Period,
	}
}

func copyModel(m *regression.Model) *regression.Model {
	c := *m
	c.Names = slices.Clone(m.Names)
	c.Coefficients = slices.Clone(m.Coefficients)
	c.StdErrors = slices.Clone(m.StdErrors)
	c.Fitted = slices.Clone(m.Fitted)
	c.Residuals = slices.Clone(m.Residuals)
	return &c
}

func (r *Runner) bins() int {
	if r.HistogramBins < 1 {
		return DefaultHistogramBins
	}
	return r.HistogramBins
}
