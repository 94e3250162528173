// Package render turns a player's percentile row into a chart description.
//
// The Figure produced here is plain data: bars, text annotations, shapes and
// axis settings in plot coordinates. Painting it to pixels is left to an
// adapter so the layout rules can be tested without a graphics backend.
package render

import "github.com/okian/slugger/internal/domain/model"

// Ref tells which coordinate system a position uses.
type Ref string

// Coordinate systems.
const (
	// RefData positions in axis units: x in percentile, y in metric rows.
	RefData Ref = "data"
	// RefPaper positions relative to the plot area, 0..1 from the lower left.
	RefPaper Ref = "paper"
)

// Anchor tells which side of a text box sits on its position.
type Anchor string

// Anchors.
const (
	AnchorLeft   Anchor = "left"
	AnchorCenter Anchor = "center"
	AnchorRight  Anchor = "right"
	AnchorTop    Anchor = "top"
	AnchorMiddle Anchor = "middle"
	AnchorBottom Anchor = "bottom"
)

// AnnotationKind classifies annotations.
type AnnotationKind string

// Annotation kinds.
const (
	KindBadge      AnnotationKind = "badge"
	KindValue      AnnotationKind = "value"
	KindDisclaimer AnnotationKind = "disclaimer"
	KindWatermark  AnnotationKind = "watermark"
)

// Font describes text styling.
type Font struct {
	Size  float64 `json:"size"`
	Color RGB     `json:"color"`
	Bold  bool    `json:"bold,omitempty"`
}

// Box is an optional filled, bordered background behind an annotation.
type Box struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Fill       RGB     `json:"fill"`
	Border     RGB     `json:"border"`
	BorderPad  float64 `json:"border_pad"`
	BorderSize float64 `json:"border_size"`
}

// Annotation is a piece of text placed on the figure.
type Annotation struct {
	Kind    AnnotationKind `json:"kind"`
	Metric  model.Metric   `json:"metric,omitempty"`
	Text    string         `json:"text"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	XRef    Ref            `json:"xref"`
	YRef    Ref            `json:"yref"`
	XAnchor Anchor         `json:"xanchor"`
	YAnchor Anchor         `json:"yanchor"`
	Font    Font           `json:"font"`
	Opacity float64        `json:"opacity"`
	Box     *Box           `json:"box,omitempty"`
}

// Bar is one horizontal bar.
type Bar struct {
	Metric     model.Metric `json:"metric"`
	Row        int          `json:"row"`
	Value      float64      `json:"value"`
	Percentile float64      `json:"percentile"`
	Reversed   bool         `json:"reversed,omitempty"`
	Color      RGB          `json:"color"`
	Text       string       `json:"text"`
}

// Shape is a straight line in data coordinates.
type Shape struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Color RGB     `json:"color"`
	Width float64 `json:"width"`
	Dash  bool    `json:"dash,omitempty"`
}

// Axis configures one axis.
type Axis struct {
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Reversed  bool      `json:"reversed,omitempty"`
	TickVals  []float64 `json:"tick_vals"`
	TickText  []string  `json:"tick_text"`
	TickColor RGB       `json:"tick_color"`
	ShowGrid  bool      `json:"show_grid"`
	GridColor RGB       `json:"grid_color"`
	GridWidth float64   `json:"grid_width"`
}

// Margin is the space around the plot area in pixels.
type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

// Layout holds figure-wide settings.
type Layout struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Margin     Margin `json:"margin"`
	PlotColor  RGB    `json:"plot_bgcolor"`
	PaperColor RGB    `json:"paper_bgcolor"`
}

// Figure is a complete chart description.
type Figure struct {
	Title       string       `json:"title"`
	TitleFont   Font         `json:"title_font"`
	Bars        []Bar        `json:"bars"`
	Annotations []Annotation `json:"annotations"`
	Shapes      []Shape      `json:"shapes"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Layout      Layout       `json:"layout"`
}

// Bar returns the bar for m, if plotted.
func (f Figure) Bar(m model.Metric) (Bar, bool) {
	for _, b := range f.Bars {
		if b.Metric == m {
			return b, true
		}
	}
	return Bar{}, false
}

// AnnotationsFor returns the annotations attached to m.
func (f Figure) AnnotationsFor(m model.Metric) []Annotation {
	var out []Annotation
	for _, a := range f.Annotations {
		if a.Metric == m {
			out = append(out, a)
		}
	}
	return out
}
