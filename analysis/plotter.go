package analysis

import (
	"github.com/sartorproj/goflux/regression"
	"github.com/sartorproj/goflux/stats"
	"github.com/sartorproj/goflux/timeseries"
)

// Plotter receives the figures produced by the analyses. Implementations
// must not modify the values they are given.
type Plotter interface {
	// PlotFlux draws flux against decimal year, plus its histogram.
	PlotFlux(flux *timeseries.Series, hist *stats.Histogram) error

	// PlotSeasonal draws the twelve monthly means.
	PlotSeasonal(cycle *stats.SeasonalCycle) error

	// PlotDecomposition draws the trend, seasonal and residual components
	// of the monthly flux series.
	PlotDecomposition(d *stats.Decomposition) error

	// PlotRegression draws observed against fitted flux and the per-column
	// contributions of the model. observed carries the time axis.
	PlotRegression(observed *timeseries.Series, model *regression.Model) error
}

// NopPlotter discards every figure.
type NopPlotter struct{}

func (NopPlotter) PlotFlux(*timeseries.Series, *stats.Histogram) error { return nil }

func (NopPlotter) PlotSeasonal(*stats.SeasonalCycle) error { return nil }

func (NopPlotter) PlotDecomposition(*stats.Decomposition) error { return nil }

func (NopPlotter) PlotRegression(*timeseries.Series, *regression.Model) error { return nil }
