package chart

import (
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/supportwise/insights/internal/models"
)

const (
	Width  = 800
	Height = 300

	DailyFilename = "daily_ticket_volume.svg"
)

// RenderDailySVG draws daily ticket volume as a line chart. Rows whose day
// cannot be parsed are skipped.
func RenderDailySVG(w io.Writer, daily []models.DailyCount) error {
	xs := make([]time.Time, 0, len(daily))
	ys := make([]float64, 0, len(daily))
	var maxCount float64
	for _, d := range daily {
		day, ok := parseDay(d.Day)
		if !ok {
			continue
		}
		xs = append(xs, day)
		ys = append(ys, float64(d.Count))
		if float64(d.Count) > maxCount {
			maxCount = float64(d.Count)
		}
	}

	graph := gochart.Chart{
		Width:  Width,
		Height: Height,
		XAxis: gochart.XAxis{
			Name:           "Day",
			ValueFormatter: gochart.TimeDateValueFormatter,
			Range:          dayRange(xs),
		},
		YAxis: gochart.YAxis{
			Name:  "Ticket count",
			Range: &gochart.ContinuousRange{Min: 0, Max: maxCount*1.1 + 1},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "Daily ticket volume",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: 2,
					DotWidth:    3,
				},
			},
		},
	}
	return graph.Render(gochart.SVG, w)
}

// dayRange pins the x axis when there are too few points for go-chart to infer one.
func dayRange(xs []time.Time) gochart.Range {
	switch len(xs) {
	case 0:
		now := time.Now().UTC().Truncate(24 * time.Hour)
		return &gochart.ContinuousRange{
			Min: gochart.TimeToFloat64(now.Add(-24 * time.Hour)),
			Max: gochart.TimeToFloat64(now),
		}
	case 1:
		return &gochart.ContinuousRange{
			Min: gochart.TimeToFloat64(xs[0].Add(-24 * time.Hour)),
			Max: gochart.TimeToFloat64(xs[0].Add(24 * time.Hour)),
		}
	}
	return nil
}

func parseDay(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
