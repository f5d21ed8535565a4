// Package report renders and exports analysis results.
package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sartorproj/goflux/regression"
	"github.com/sartorproj/goflux/stats"
	"github.com/sartorproj/goflux/timeseries"
)

const (
	chartWidth  = "1100px"
	chartHeight = "420px"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Charts collects figures as ECharts charts and renders them into a single
// HTML page. It implements analysis.Plotter.
type Charts struct {
	Title string

	// StartYear and EndYear bound the decimal-year axis of time plots.
	// Zero leaves the bound to ECharts.
	StartYear int
	EndYear   int

	charts []components.Charter
}

// NewCharts creates an empty page with the given title.
func NewCharts(title string) *Charts {
	return &Charts{Title: title}
}

// Len returns the number of charts collected so far.
func (c *Charts) Len() int {
	return len(c.charts)
}

// PlotFlux adds a scatter of flux against decimal year and, when hist is
// non-nil, a bar chart of its density.
func (c *Charts) PlotFlux(flux *timeseries.Series, hist *stats.Histogram) error {
	if flux.Len() != len(flux.Times) {
		return fmt.Errorf("report: flux series has %d values and %d times", flux.Len(), len(flux.Times))
	}

	points := make([]opts.ScatterData, flux.Len())
	for i, v := range flux.Values {
		points[i] = opts.ScatterData{Value: []interface{}{flux.Times[i], value(v)}, SymbolSize: 3}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		c.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Flux time series", Subtitle: c.Title}),
		charts.WithXAxisOpts(c.yearAxis()),
		charts.WithYAxisOpts(opts.YAxis{Name: flux.Name, Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	scatter.AddSeries(flux.Name, points)
	c.charts = append(c.charts, scatter)

	if hist == nil {
		return nil
	}

	labels := make([]string, len(hist.Counts))
	bars := make([]opts.BarData, len(hist.Counts))
	for i := range hist.Counts {
		labels[i] = fmt.Sprintf("%.2f", (hist.Edges[i]+hist.Edges[i+1])/2)
		bars[i] = opts.BarData{Value: value(hist.Density[i])}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		c.initOpts(),
		charts.WithTitleOpts(opts.Title{
			Title:    "Flux histogram",
			Subtitle: fmt.Sprintf("%d bins, %d values", len(hist.Counts), hist.N),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: flux.Name}),
		charts.WithYAxisOpts(opts.YAxis{Name: "density"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("density", bars)
	c.charts = append(c.charts, bar)

	return nil
}

// PlotSeasonal adds a line of the twelve monthly means.
func (c *Charts) PlotSeasonal(cycle *stats.SeasonalCycle) error {
	data := make([]opts.LineData, len(cycle.Means))
	for i, m := range cycle.Means {
		data[i] = opts.LineData{Value: value(m)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		c.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Seasonal cycle", Subtitle: "mean flux per calendar month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "flux", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(monthLabels).AddSeries("mean", data).
		SetSeriesOptions(
			charts.WithMarkPointNameTypeItemOpts(
				opts.MarkPointNameTypeItem{Name: "Maximum", Type: "max"},
				opts.MarkPointNameTypeItem{Name: "Minimum", Type: "min"},
			),
		)
	c.charts = append(c.charts, line)

	return nil
}

// PlotDecomposition adds one line per decomposition component.
func (c *Charts) PlotDecomposition(d *stats.Decomposition) error {
	line := c.timeLine(
		"Monthly flux decomposition",
		fmt.Sprintf("additive, period %d", d.Period),
		"flux",
	)
	for _, s := range []*timeseries.Series{d.Original, d.Trend, d.Seasonal, d.Residual} {
		addXY(line, s.Name, s.Times, s.Values)
	}
	c.charts = append(c.charts, line)

	return nil
}

// PlotRegression adds observed against fitted flux, annotated with their
// correlation, and the contribution of every design matrix column.
func (c *Charts) PlotRegression(observed *timeseries.Series, model *regression.Model) error {
	if len(observed.Times) != model.N {
		return fmt.Errorf("report: %d observation times for a model over %d rows", len(observed.Times), model.N)
	}

	fit := c.timeLine("Observed vs fitted flux", fmt.Sprintf("r = %.4f", model.Correlation), "flux")
	addXY(fit, "observed", observed.Times, observed.Values)
	addXY(fit, "fitted", observed.Times, model.Fitted)
	c.charts = append(c.charts, fit)

	contrib := c.timeLine("Regression contributions", "column value x coefficient", "flux")
	for j, values := range model.Contributions() {
		addXY(contrib, model.Names[j], observed.Times, values)
	}
	c.charts = append(c.charts, contrib)

	return nil
}

// Render writes the page holding every collected chart.
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = c.Title
	page.AddCharts(c.charts...)
	return page.Render(w)
}

// Save renders the page to a file.
func (c *Charts) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("report: render %s: %w", path, err)
	}
	return f.Close()
}

func (c *Charts) initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: c.Title,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

func (c *Charts) yearAxis() opts.XAxis {
	axis := opts.XAxis{Name: "year", Type: "value"}
	if c.StartYear != 0 {
		axis.Min = c.StartYear
	}
	if c.EndYear != 0 {
		axis.Max = c.EndYear
	}
	return axis
}

func (c *Charts) timeLine(title, subtitle, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		c.initOpts(),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithXAxisOpts(c.yearAxis()),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	return line
}

// addXY adds values against times as a line without symbols.
func addXY(line *charts.Line, name string, times, values []float64) {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: []interface{}{times[i], value(v)}}
	}
	line.AddSeries(name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
}

// value maps non-finite numbers to the ECharts missing-data marker.
func value(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}
