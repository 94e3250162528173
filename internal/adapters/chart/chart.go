// Package chart paints render.Figure values to SVG or PNG using go-chart renderers.
package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/slugger/internal/domain/render"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Painting constants.
const (
	dpi             = 96.0
	pointsPerPixel  = 72.0 / dpi
	barFill         = 0.8 // share of a row covered by its bar
	tickGap         = 6
	titleGap        = 8
	dashLength      = 6.0
	maxOpacityValue = 255
)

// ParseFormat maps a name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Paint draws fig in the given format to w.
func Paint(w io.Writer, fig render.Figure, format Format) error {
	width, height := fig.Layout.Width, fig.Layout.Height
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFont, err)
	}
	r, err := format.provider()(width, height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if format == FormatSVG {
		r = svgText{r}
	}
	r.SetDPI(dpi)
	r.SetFont(font)

	p := newPlot(fig)
	p.background(r)
	p.grid(r)
	p.bars(r)
	p.shapes(r)
	p.ticks(r)
	p.annotations(r)
	p.title(r)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// svgText escapes text bodies, which the SVG renderer writes verbatim.
type svgText struct {
	gochart.Renderer
}

func (s svgText) Text(body string, x, y int) {
	s.Renderer.Text(html.EscapeString(body), x, y)
}

// plot maps figure coordinates to pixels.
type plot struct {
	fig                      render.Figure
	left, right, top, bottom float64
}

func newPlot(fig render.Figure) *plot {
	m := fig.Layout.Margin
	left := float64(m.Left) + labelWidth(fig.YAxis.TickText)
	return &plot{
		fig:    fig,
		left:   left,
		right:  float64(fig.Layout.Width - m.Right),
		top:    float64(m.Top),
		bottom: float64(fig.Layout.Height - m.Bottom),
	}
}

// labelWidth estimates the width reserved for y tick labels.
func labelWidth(labels []string) float64 {
	longest := 0
	for _, l := range labels {
		if n := len(l); n > longest {
			longest = n
		}
	}
	const avgGlyph = 7.0
	return float64(longest) * avgGlyph
}

func (p *plot) x(v float64) int {
	a := p.fig.XAxis
	if a.Max == a.Min {
		return int(p.left)
	}
	t := (v - a.Min) / (a.Max - a.Min)
	if a.Reversed {
		t = 1 - t
	}
	return int(math.Round(p.left + t*(p.right-p.left)))
}

func (p *plot) y(v float64) int {
	a := p.fig.YAxis
	if a.Max == a.Min {
		return int(p.top)
	}
	t := (v - a.Min) / (a.Max - a.Min)
	if !a.Reversed {
		t = 1 - t
	}
	return int(math.Round(p.top + t*(p.bottom-p.top)))
}

func (p *plot) paperX(v float64) int {
	return int(math.Round(p.left + v*(p.right-p.left)))
}

func (p *plot) paperY(v float64) int {
	return int(math.Round(p.bottom - v*(p.bottom-p.top)))
}

func (p *plot) rowHeight() float64 {
	a := p.fig.YAxis
	if a.Max == a.Min {
		return 0
	}
	return (p.bottom - p.top) / (a.Max - a.Min)
}

func (p *plot) background(r gochart.Renderer) {
	l := p.fig.Layout
	rect(r, 0, 0, l.Width, l.Height, color(l.PaperColor, 1), drawing.ColorTransparent, 0)
	rect(r, int(p.left), int(p.top), int(p.right), int(p.bottom), color(l.PlotColor, 1), drawing.ColorTransparent, 0)
}

func (p *plot) grid(r gochart.Renderer) {
	if a := p.fig.YAxis; a.ShowGrid {
		for _, v := range a.TickVals {
			y := p.y(v)
			line(r, int(p.left), y, int(p.right), y, color(a.GridColor, 1), a.GridWidth, false)
		}
	}
	if a := p.fig.XAxis; a.ShowGrid {
		for _, v := range a.TickVals {
			x := p.x(v)
			line(r, x, int(p.top), x, int(p.bottom), color(a.GridColor, 1), a.GridWidth, false)
		}
	}
}

func (p *plot) bars(r gochart.Renderer) {
	half := p.rowHeight() * barFill / 2
	for _, b := range p.fig.Bars {
		cy := float64(p.y(float64(b.Row)))
		top := int(math.Round(cy - half))
		bottom := int(math.Round(cy + half))
		rect(r, p.x(0), top, p.x(b.Percentile), bottom, color(b.Color, 1), drawing.ColorTransparent, 0)
	}
}

func (p *plot) shapes(r gochart.Renderer) {
	for _, s := range p.fig.Shapes {
		line(r, p.x(s.X0), p.y(s.Y0), p.x(s.X1), p.y(s.Y1), color(s.Color, 1), s.Width, s.Dash)
	}
}

func (p *plot) ticks(r gochart.Renderer) {
	ya := p.fig.YAxis
	for i, v := range ya.TickVals {
		if i >= len(ya.TickText) {
			break
		}
		label := strings.TrimRight(ya.TickText[i], " ")
		text(r, label, int(p.left)-tickGap, p.y(v), render.AnchorRight, render.AnchorMiddle, render.Font{Size: 12, Color: ya.TickColor}, 1)
	}
	xa := p.fig.XAxis
	for i, v := range xa.TickVals {
		if i >= len(xa.TickText) {
			break
		}
		text(r, xa.TickText[i], p.x(v), int(p.bottom)+tickGap, render.AnchorCenter, render.AnchorTop, render.Font{Size: 12, Color: xa.TickColor}, 1)
	}
}

func (p *plot) annotations(r gochart.Renderer) {
	for _, a := range p.fig.Annotations {
		var x, y int
		if a.XRef == render.RefPaper {
			x = p.paperX(a.X)
		} else {
			x = p.x(a.X)
		}
		if a.YRef == render.RefPaper {
			y = p.paperY(a.Y)
		} else {
			y = p.y(a.Y)
		}
		if b := a.Box; b != nil {
			w := int(b.Width + 2*b.BorderPad)
			h := int(b.Height + 2*b.BorderPad)
			rect(r, x-w/2, y-h/2, x-w/2+w, y-h/2+h, color(b.Fill, a.Opacity), color(b.Border, a.Opacity), b.BorderSize)
		}
		text(r, a.Text, x, y, a.XAnchor, a.YAnchor, a.Font, a.Opacity)
	}
}

func (p *plot) title(r gochart.Renderer) {
	if p.fig.Title == "" {
		return
	}
	y := p.fig.Layout.Margin.Top / 2
	text(r, p.fig.Title, p.fig.Layout.Margin.Left+titleGap, y, render.AnchorLeft, render.AnchorMiddle, p.fig.TitleFont, 1)
}

func color(c render.RGB, opacity float64) drawing.Color {
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(opacity * maxOpacityValue))}
}

func rect(r gochart.Renderer, x0, y0, x1, y1 int, fill, stroke drawing.Color, strokeWidth float64) {
	r.ResetStyle()
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(strokeWidth)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	if strokeWidth > 0 {
		r.FillStroke()
		return
	}
	r.Fill()
}

func line(r gochart.Renderer, x0, y0, x1, y1 int, stroke drawing.Color, width float64, dashed bool) {
	r.ResetStyle()
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(width)
	if dashed {
		r.SetStrokeDashArray([]float64{dashLength, dashLength})
	}
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// text draws body with its box anchored at (x, y).
func text(r gochart.Renderer, body string, x, y int, xAnchor, yAnchor render.Anchor, f render.Font, opacity float64) {
	if body == "" {
		return
	}
	font, err := gochart.GetDefaultFont()
	if err == nil {
		r.SetFont(font)
	}
	r.SetFontColor(color(f.Color, opacity))
	r.SetFontSize(f.Size * pointsPerPixel)

	box := r.MeasureText(body)
	w, h := box.Width(), box.Height()
	switch xAnchor {
	case render.AnchorCenter:
		x -= w / 2
	case render.AnchorRight:
		x -= w
	}
	// Text is drawn from its baseline.
	switch yAnchor {
	case render.AnchorTop:
		y += h
	case render.AnchorMiddle:
		y += h / 2
	}
	r.Text(body, x, y)
}
