package chart_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/okian/slugger/internal/adapters/chart"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/internal/domain/render"
	. "github.com/smartystreets/goconvey/convey"
)

func figure() render.Figure {
	row := model.PercentileRow{
		PlayerRecord: model.PlayerRecord{
			Name:  "Art Charles",
			Stats: model.Values{model.AVG: 0.25, model.BBPct: 8},
		},
		Percentiles: model.Values{model.AVG: 63.9, model.BBPct: 40},
	}
	return render.Render(row, render.DefaultOptions())
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := chart.ParseFormat("")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, chart.FormatSVG)

		f, err = chart.ParseFormat(".PNG")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, chart.FormatPNG)
		So(f.ContentType(), ShouldEqual, "image/png")
		So(chart.FormatSVG.ContentType(), ShouldEqual, "image/svg+xml")

		_, err = chart.ParseFormat("gif")
		So(errors.Is(err, chart.ErrUnsupportedFormat), ShouldBeTrue)
	})
}

func TestPaint(t *testing.T) {
	Convey("Given a rendered figure", t, func() {
		fig := figure()

		Convey("When painting SVG", func() {
			var buf bytes.Buffer
			err := chart.Paint(&buf, fig, chart.FormatSVG)

			Convey("Then the document carries the title and annotations", func() {
				So(err, ShouldBeNil)
				out := buf.String()
				So(out, ShouldContainSubstring, "<svg")
				So(out, ShouldContainSubstring, "Percentiles for Art Charles")
				So(out, ShouldContainSubstring, "0.250")
				So(out, ShouldContainSubstring, render.DefaultDisclaimer)
				So(out, ShouldContainSubstring, render.DefaultWatermark)
			})
		})

		Convey("When painting PNG", func() {
			var buf bytes.Buffer
			err := chart.Paint(&buf, fig, chart.FormatPNG)

			Convey("Then a PNG image is written", func() {
				So(err, ShouldBeNil)
				So(buf.Len(), ShouldBeGreaterThan, 8)
				So(buf.Bytes()[:4], ShouldResemble, []byte{0x89, 'P', 'N', 'G'})
			})
		})

		Convey("When the layout has no size", func() {
			fig.Layout.Width = 0
			err := chart.Paint(&bytes.Buffer{}, fig, chart.FormatSVG)

			Convey("Then painting fails", func() {
				So(errors.Is(err, chart.ErrInvalidSize), ShouldBeTrue)
			})
		})
	})

	Convey("Given an empty figure", t, func() {
		fig := render.Render(model.PercentileRow{PlayerRecord: model.PlayerRecord{Name: "Nobody"}}, render.DefaultOptions())

		Convey("Then it still paints", func() {
			var buf bytes.Buffer
			So(chart.Paint(&buf, fig, chart.FormatSVG), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "Percentiles for Nobody")
		})
	})

	Convey("Given a player name with markup characters", t, func() {
		fig := render.Render(model.PercentileRow{PlayerRecord: model.PlayerRecord{Name: "Smith & <Jones>"}}, render.DefaultOptions())

		Convey("Then the SVG text is escaped", func() {
			var buf bytes.Buffer
			So(chart.Paint(&buf, fig, chart.FormatSVG), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "Smith &amp; &lt;Jones&gt;")
			So(buf.String(), ShouldNotContainSubstring, "<Jones>")
		})
	})
}
