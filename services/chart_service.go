package services

import (
	"bytes"
	"errors"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ekaraca/bulut-istakip/models"
)

// ErrNoChartData is returned when there is nothing to draw yet.
var ErrNoChartData = errors.New("no applications to chart")

// ChartService renders the dashboard charts as PNG images.
type ChartService struct{}

func NewChartService() *ChartService {
	return &ChartService{}
}

var statusColors = map[models.Status]drawing.Color{
	models.StatusApplied:          chart.ColorBlue,
	models.StatusInterviewed:      chart.ColorCyan,
	models.StatusInterviewPending: chart.ColorOrange,
	models.StatusOfferReceived:    chart.ColorGreen,
	models.StatusRejected:         chart.ColorRed,
}

// StatusPie draws the status distribution.
func (cs *ChartService) StatusPie(apps []models.Application) ([]byte, error) {
	if len(apps) == 0 {
		return nil, ErrNoChartData
	}
	counts := make(map[models.Status]int)
	for _, app := range apps {
		counts[app.Status]++
	}
	values := make([]chart.Value, 0, len(counts))
	for _, st := range models.AllStatuses {
		if counts[st] == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: string(st),
			Value: float64(counts[st]),
			Style: chart.Style{FillColor: statusColors[st]},
		})
	}
	pie := chart.PieChart{Width: 512, Height: 512, Values: values}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompanyBar draws how many applications went to each company.
func (cs *ChartService) CompanyBar(apps []models.Application) ([]byte, error) {
	if len(apps) == 0 {
		return nil, ErrNoChartData
	}
	counts := make(map[string]int)
	for _, app := range apps {
		counts[app.Company]++
	}
	companies := make([]string, 0, len(counts))
	for company := range counts {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	bars := make([]chart.Value, 0, len(companies))
	for _, company := range companies {
		bars = append(bars, chart.Value{Label: company, Value: float64(counts[company])})
	}
	bar := chart.BarChart{
		Width:    900,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Timeline scatters applications over time, one colored series per
// status, statuses stacked on the Y axis.
func (cs *ChartService) Timeline(apps []models.Application) ([]byte, error) {
	if len(apps) == 0 {
		return nil, ErrNoChartData
	}

	// A zero-width x-range makes the renderer fail, which happens as
	// soon as every point shares one timestamp. Padding a day on each
	// side keeps single-application charts rendering and the dots off
	// the plot edges.
	minAt, maxAt := apps[0].LastActionAt, apps[0].LastActionAt
	for _, app := range apps[1:] {
		if app.LastActionAt.Before(minAt) {
			minAt = app.LastActionAt
		}
		if app.LastActionAt.After(maxAt) {
			maxAt = app.LastActionAt
		}
	}
	xRange := &chart.ContinuousRange{
		Min: float64(minAt.AddDate(0, 0, -1).UnixNano()),
		Max: float64(maxAt.AddDate(0, 0, 1).UnixNano()),
	}

	level := make(map[models.Status]float64, len(models.AllStatuses))
	ticks := []chart.Tick{}
	for i, st := range models.AllStatuses {
		level[st] = float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: string(st)})
	}

	series := make([]chart.Series, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		ts := chart.TimeSeries{
			Name: string(st),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    6,
				DotColor:    statusColors[st],
			},
		}
		for _, app := range apps {
			if app.Status != st {
				continue
			}
			ts.XValues = append(ts.XValues, app.LastActionAt)
			ts.YValues = append(ts.YValues, level[st])
		}
		if len(ts.XValues) > 0 {
			series = append(series, ts)
		}
	}

	graph := chart.Chart{
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02-01-2006"),
			Range:          xRange,
		},
		YAxis: chart.YAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(models.AllStatuses)) + 0.5},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
