package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered site", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()
		Register(ctx, mux, Page{
			ContactEmail: "someone@example.com",
			Socials:      []Link{{Name: "GitHub", URL: "https://github.com/example"}},
		})

		Convey("Then / serves the page", func() {
			req := httptest.NewRequest("GET", "/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			body := w.Body.String()
			So(body, ShouldContainSubstring, "<title>Player Percentiles</title>")
			So(body, ShouldContainSubstring, `value="qualified"`)
			So(body, ShouldContainSubstring, `id="player-search"`)
			So(body, ShouldContainSubstring, "<details>")
			So(body, ShouldContainSubstring, `href="https://github.com/example"`)
			So(body, ShouldContainSubstring, "mailto:someone@example.com")
		})

		Convey("And the scripts and styles are served", func() {
			for _, path := range []string{"/static/app.js", "/static/style.css"} {
				req := httptest.NewRequest("GET", path, nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("And the script redraws when filtering changes the selection", func() {
			req := httptest.NewRequest("GET", "/static/app.js", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Body.String(), ShouldContainSubstring, `fill(search.value);
    if (select.value !== selected) {
      selected = select.value;
      draw();
    }`)
		})

		Convey("And unknown paths are not found", func() {
			req := httptest.NewRequest("GET", "/some-asset", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And other methods are refused", func() {
			req := httptest.NewRequest("POST", "/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	Convey("Given a page without a contact address", t, func() {
		body, err := NewRootHandler(Page{Title: "T"}).Render()

		Convey("Then the contact panel is left out", func() {
			So(err, ShouldBeNil)
			So(string(body), ShouldNotContainSubstring, "mailto:")
		})
	})

	Convey("Given a hostile link", t, func() {
		body, err := NewRootHandler(Page{Title: "T", Socials: []Link{{Name: "<b>x</b>", URL: "javascript:alert(1)"}}}).Render()

		Convey("Then it is escaped", func() {
			So(err, ShouldBeNil)
			So(string(body), ShouldNotContainSubstring, "<b>x</b>")
			So(string(body), ShouldNotContainSubstring, "javascript:alert")
		})
	})
}
