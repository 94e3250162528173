package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/slugger/internal/adapters/chart"
	"github.com/okian/slugger/internal/adapters/http/api"
	service "github.com/okian/slugger/internal/app"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/internal/domain/render"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies serves a fixed player per population.
type mockDependencies struct {
	chartErr  error
	nonFinite bool
	calls     []string
}

func (m *mockDependencies) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockDependencies) row(pop model.Population, name string) (model.PercentileRow, error) {
	if name == "" {
		name = "Art Charles"
	}
	if name != "Art Charles" {
		return model.PercentileRow{}, fmt.Errorf("%w: %q", model.ErrPlayerNotFound, name)
	}
	pct := 63.5
	if m.nonFinite {
		pct = math.Inf(1)
	}
	return model.PercentileRow{
		PlayerRecord: model.PlayerRecord{Name: name, Qualified: pop == model.PopulationQualified, Stats: model.Values{model.AVG: 0.25}},
		Percentiles:  model.Values{model.AVG: pct},
	}, nil
}

func (m *mockDependencies) Players(_ context.Context, pop model.Population) (service.PlayerList, error) {
	m.record("players %s", pop)
	return service.PlayerList{Population: pop, Label: pop.Label(), Default: "Art Charles", Players: []string{"Art Charles", "Bo Diaz"}}, nil
}

func (m *mockDependencies) Percentiles(_ context.Context, pop model.Population, name string) (model.PercentileRow, error) {
	m.record("percentiles %s %s", pop, name)
	return m.row(pop, name)
}

func (m *mockDependencies) Chart(_ context.Context, pop model.Population, name string) (render.Figure, error) {
	row, err := m.row(pop, name)
	if err != nil {
		return render.Figure{}, err
	}
	return render.Render(row, render.DefaultOptions()), nil
}

func (m *mockDependencies) ChartImage(ctx context.Context, pop model.Population, name string, format chart.Format, w io.Writer) error {
	if m.chartErr != nil {
		return m.chartErr
	}
	fig, err := m.Chart(ctx, pop, name)
	if err != nil {
		return err
	}
	return chart.Paint(w, fig, format)
}

func (m *mockDependencies) Summary(_ context.Context, pop model.Population) (service.Summary, error) {
	return service.Summary{Population: pop, Players: 2}, nil
}

type mockStatsProvider struct {
	stats map[string]any
}

func (m *mockStatsProvider) GetStats() map[string]any {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]any{"started": true}}, nil).Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockDependencies{})

		Convey("Then the health endpoint serves metrics", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint serves JSON", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And every response carries a request id", func() {
			w := get(mux, "/api/players")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("And a caller request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/players", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("And non-GET methods are refused", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/players", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
		})
	})
}

func TestPlayersHandler(t *testing.T) {
	Convey("Given the players endpoint", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When the population is omitted", func() {
			w := get(mux, "/api/players")

			Convey("Then all players are listed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var list service.PlayerList
				So(json.Unmarshal(w.Body.Bytes(), &list), ShouldBeNil)
				So(list.Population, ShouldEqual, model.PopulationAll)
				So(list.Default, ShouldEqual, "Art Charles")
				So(deps.calls, ShouldResemble, []string{"players all"})
			})
		})

		Convey("When the qualified population is requested", func() {
			w := get(mux, "/api/players?population=qualified")

			Convey("Then the qualified list is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.calls, ShouldResemble, []string{"players qualified"})
			})
		})

		Convey("When the population is unknown", func() {
			w := get(mux, "/api/players?population=rookies")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
				So(deps.calls, ShouldBeEmpty)
			})
		})
	})
}

func TestPercentilesHandler(t *testing.T) {
	Convey("Given the percentiles endpoint", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When a known player is requested", func() {
			w := get(mux, "/api/percentiles?population=all&player=Art+Charles")

			Convey("Then the row is returned with its population", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Population  string             `json:"population"`
					Name        string             `json:"name"`
					Percentiles map[string]float64 `json:"percentiles"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Population, ShouldEqual, "all")
				So(body.Name, ShouldEqual, "Art Charles")
				So(body.Percentiles["AVG"], ShouldEqual, 63.5)
			})
		})

		Convey("When the player is omitted", func() {
			w := get(mux, "/api/percentiles")

			Convey("Then the default is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.calls, ShouldResemble, []string{"percentiles all "})
			})
		})

		Convey("When the player is unknown", func() {
			w := get(mux, "/api/percentiles?player=Nobody")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w)["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the row holds a value JSON cannot encode", func() {
			deps.nonFinite = true
			w := get(mux, "/api/percentiles?player=Art+Charles")

			Convey("Then a JSON internal error is returned instead of an empty 200", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.Len(), ShouldBeGreaterThan, 0)
				So(decodeError(w)["code"], ShouldEqual, "internal_error")
			})
		})
	})
}

func TestChartHandler(t *testing.T) {
	Convey("Given the chart endpoints", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When the figure is requested as JSON", func() {
			w := get(mux, "/api/chart?player=Art+Charles")

			Convey("Then bars and annotations are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var fig render.Figure
				So(json.Unmarshal(w.Body.Bytes(), &fig), ShouldBeNil)
				So(fig.Title, ShouldEqual, "Percentiles for Art Charles")
				So(fig.Bars, ShouldHaveLength, 1)
				So(fig.Bars[0].Text, ShouldEqual, "0.250 (63%)")
			})
		})

		Convey("When the SVG image is requested", func() {
			w := get(mux, "/chart.svg")

			Convey("Then an SVG document is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(w.Body.String(), ShouldContainSubstring, "<svg")
			})
		})

		Convey("When the PNG image is requested", func() {
			w := get(mux, "/chart.png?population=qualified")

			Convey("Then a PNG image is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
			})
		})

		Convey("When the image is requested for an unknown player", func() {
			w := get(mux, "/chart.svg?player=Nobody")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When painting fails", func() {
			deps.chartErr = errors.New("boom")
			w := get(mux, "/chart.png")

			Convey("Then a JSON internal error is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w)["code"], ShouldEqual, "internal_error")
			})
		})

		Convey("When the dataset is unavailable", func() {
			deps.chartErr = service.ErrNotStarted
			w := get(mux, "/chart.svg")

			Convey("Then the service is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestSummaryHandler(t *testing.T) {
	Convey("Given the summary endpoint", t, func() {
		mux := newMux(&mockDependencies{})

		Convey("Then the population summary is returned", func() {
			w := get(mux, "/api/summary?population=Qualified+Players")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"population":"qualified"`)
		})
	})
}
