package render

import (
	"fmt"
	"strconv"

	"github.com/okian/slugger/internal/domain/model"
)

// Chart geometry in plot units and pixels.
const (
	xMax           = 105.0
	valueColumnX   = 105.0
	referenceX     = 50.0
	referenceWidth = 2.0
	badgeSize      = 18.0
	badgePad       = 4.0
	disclaimerY    = -0.05
	watermarkY     = -0.10
	tickPadding    = "   "

	// DefaultSize is the reference width and height of the chart in pixels.
	DefaultSize = 800
	// DefaultDisclaimer explains the qualification threshold.
	DefaultDisclaimer = "*2.1 PA per team game to qualify"
	// DefaultWatermark attributes the chart.
	DefaultWatermark = "@iamfrankjuarez"
)

// Options controls what Render draws.
type Options struct {
	// Metrics is the top-to-bottom row order.
	Metrics []model.Metric
	// Reverse marks bars whose percentile was inverted upstream. Render never inverts again.
	Reverse model.MetricSet
	// Decimals lists metrics formatted with exactly three decimals.
	Decimals   model.MetricSet
	Disclaimer string
	Watermark  string
	Width      int
	Height     int
}

// DefaultOptions returns the options of the published dashboard.
func DefaultOptions() Options {
	return Options{
		Metrics:    model.Metrics(),
		Reverse:    model.ReverseMetrics,
		Decimals:   model.DecimalMetrics,
		Disclaimer: DefaultDisclaimer,
		Watermark:  DefaultWatermark,
		Width:      DefaultSize,
		Height:     DefaultSize,
	}
}

// FormatValue renders a raw metric value: three decimals for rate stats,
// the shortest exact form otherwise (8 -> "8", 8.5 -> "8.5").
func FormatValue(m model.Metric, v float64, decimals model.MetricSet) string {
	if decimals.Has(m) {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BarText is the combined label of a bar, e.g. "0.250 (63%)".
func BarText(formatted string, pct float64) string {
	return fmt.Sprintf("%s (%d%%)", formatted, int(pct))
}

// Render lays out the percentile chart for row. Metrics whose raw value or
// percentile is null are skipped without reserving a row. A row with nothing
// to plot still yields a valid, empty figure.
func Render(row model.PercentileRow, opts Options) Figure {
	if opts.Width <= 0 {
		opts.Width = DefaultSize
	}
	if opts.Height <= 0 {
		opts.Height = DefaultSize
	}

	f := Figure{
		Title:     "Percentiles for " + row.Name,
		TitleFont: Font{Size: 17, Color: Black},
		Layout: Layout{
			Width:      opts.Width,
			Height:     opts.Height,
			Margin:     Margin{Left: 20, Right: 50, Top: 50, Bottom: 80},
			PlotColor:  Beige,
			PaperColor: Beige,
		},
		Bars: []Bar{},
	}

	labels := []string{}
	for _, m := range opts.Metrics {
		value, ok := row.Stats.Get(m)
		if !ok {
			continue
		}
		pct, ok := row.Percentiles.Get(m)
		if !ok {
			continue
		}

		y := len(f.Bars)
		formatted := FormatValue(m, value, opts.Decimals)
		f.Bars = append(f.Bars, Bar{
			Metric:     m,
			Row:        y,
			Value:      value,
			Percentile: pct,
			Reversed:   opts.Reverse.Has(m),
			Color:      PercentileScale.At(pct),
			Text:       BarText(formatted, pct),
		})
		f.Annotations = append(f.Annotations,
			Annotation{
				Kind:    KindBadge,
				Metric:  m,
				Text:    strconv.Itoa(int(pct)),
				X:       pct,
				Y:       float64(y),
				XRef:    RefData,
				YRef:    RefData,
				XAnchor: AnchorCenter,
				YAnchor: AnchorMiddle,
				Font:    Font{Size: 12, Color: White, Bold: true},
				Opacity: 1,
				Box: &Box{
					Width:      badgeSize,
					Height:     badgeSize,
					Fill:       Gray,
					Border:     Black,
					BorderPad:  badgePad,
					BorderSize: 1,
				},
			},
			Annotation{
				Kind:    KindValue,
				Metric:  m,
				Text:    formatted,
				X:       valueColumnX,
				Y:       float64(y),
				XRef:    RefData,
				YRef:    RefData,
				XAnchor: AnchorLeft,
				YAnchor: AnchorMiddle,
				Font:    Font{Size: 14, Color: Black, Bold: true},
				Opacity: 1,
			},
		)
		labels = append(labels, string(m)+tickPadding)
	}

	n := len(f.Bars)
	f.Shapes = []Shape{{
		X0:    referenceX,
		Y0:    -0.5,
		X1:    referenceX,
		Y1:    float64(n) - 0.5,
		Color: Gray,
		Width: referenceWidth,
		Dash:  true,
	}}

	f.Annotations = append(f.Annotations,
		Annotation{
			Kind:    KindDisclaimer,
			Text:    opts.Disclaimer,
			X:       0,
			Y:       disclaimerY,
			XRef:    RefPaper,
			YRef:    RefPaper,
			XAnchor: AnchorLeft,
			YAnchor: AnchorBottom,
			Font:    Font{Size: 10, Color: Red},
			Opacity: 1,
		},
		Annotation{
			Kind:    KindWatermark,
			Text:    opts.Watermark,
			X:       0,
			Y:       watermarkY,
			XRef:    RefPaper,
			YRef:    RefPaper,
			XAnchor: AnchorLeft,
			YAnchor: AnchorBottom,
			Font:    Font{Size: 12, Color: Gray},
			Opacity: 0.4,
		},
	)

	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = float64(i)
	}
	f.YAxis = Axis{
		Min:       -0.5,
		Max:       float64(n) - 0.5,
		Reversed:  true,
		TickVals:  ticks,
		TickText:  labels,
		TickColor: Black,
		ShowGrid:  true,
		GridColor: LightGray,
		GridWidth: 1,
	}
	f.XAxis = Axis{
		Min:       0,
		Max:       xMax,
		TickVals:  []float64{0, 20, 40, 60, 80, 100},
		TickText:  []string{"0", "20", "40", "60", "80", "100"},
		TickColor: Black,
		ShowGrid:  false,
	}
	return f
}
