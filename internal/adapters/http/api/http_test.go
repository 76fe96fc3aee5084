package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/liftrank/internal/adapters/http/api"
	service "github.com/okian/liftrank/internal/app"
	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/athlete/athletetest"
	"github.com/okian/liftrank/internal/domain/compare"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/scoring"
	"github.com/okian/liftrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithLevel("error")); err != nil {
		panic(err)
	}
}

var (
	m73 = athletetest.Category("M73", athlete.Male, 73)
	m89 = athletetest.Category("M89", athlete.Male, 89)
	w64 = athletetest.Category("W64", athlete.Female, 64)
)

// failingDeps returns err from every pass.
type failingDeps struct {
	err error
}

func (f failingDeps) Order(context.Context, service.OrderInput) (service.OrderResult, error) {
	return service.OrderResult{}, f.err
}

func (f failingDeps) Rank(context.Context, service.RankInput) (service.RankResult, error) {
	return service.RankResult{}, f.err
}

func (f failingDeps) Value(context.Context, athlete.Record, scoring.Metric) float64 { return 0 }

func (f failingDeps) CategoryResults(context.Context, scoring.Metric, *order.Options, []athlete.Record) ([]service.CategoryResult, error) {
	return nil, f.err
}

func newMux(svc *service.Service) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func post(mux http.Handler, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		panic(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func errorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"code"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return body.Code
}

type athleteBody struct {
	ID             string         `json:"id"`
	Total          int            `json:"total"`
	Ranks          map[string]int `json:"ranks"`
	Points         map[string]int `json:"points"`
	Participations []struct {
		Category string         `json:"category"`
		Ranks    map[string]int `json:"ranks"`
	} `json:"participations"`
}

func session() []athlete.Record {
	return []athlete.Record{
		athletetest.New("heavy").Category(m89).Start(1).Lifts(100).Request(105).Record(),
		athletetest.New("light").Category(m89).Start(2).Lifts(90).Request(95).Record(),
		athletetest.New("woman").Category(w64).Start(3).Lifts(70).Request(75).Record(),
	}
}

func finished() []athlete.Record {
	return []athlete.Record{
		athletetest.New("second").Category(m89).BodyWeight(88).Lifts(100, 105, -110, 120, 125, -130).Record(),
		athletetest.New("first").Category(m89).BodyWeight(88.5).Lifts(110, 115, -120, 130, 135, -140).Record(),
		athletetest.New("woman").Category(w64).BodyWeight(63).Lifts(70, 75, 80, 90, 95, 100).Record(),
	}
}

func ids(list []athleteBody) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given an API server on a mux", t, func() {
		svc := service.New()
		mux := newMux(svc)

		Convey("Then the health endpoint serves metrics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the stats endpoint reports the service counters", func() {
			post(mux, "/order", map[string]any{"kind": "lifting", "athletes": session()})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)

			var stats map[string]any
			So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["passes"], ShouldEqual, float64(1))
			So(stats["max_athletes"], ShouldEqual, float64(500))
		})

		Convey("Then business endpoints reject other methods", func() {
			for _, path := range []string{"/order", "/ranks", "/value", "/results/categories"} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			}
		})
	})
}

func TestOrderHandler(t *testing.T) {
	Convey("Given an API server", t, func() {
		mux := newMux(service.New())

		Convey("When the lifting order is posted", func() {
			rec := post(mux, "/order?explain=true", map[string]any{"kind": "lifting", "athletes": session()})

			Convey("Then the lightest request lifts first", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

				var body struct {
					Spec     string        `json:"spec"`
					Steps    []string      `json:"steps"`
					Athletes []athleteBody `json:"athletes"`
					Explain  []struct {
						Before   string           `json:"before"`
						After    string           `json:"after"`
						Decision compare.Decision `json:"decision"`
					} `json:"explain"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Spec, ShouldEqual, "lifting")
				So(ids(body.Athletes), ShouldResemble, []string{"woman", "light", "heavy"})
				So(body.Explain, ShouldHaveLength, 2)
				So(body.Explain[0].Before, ShouldEqual, "woman")
				So(body.Explain[0].Decision.Result, ShouldEqual, -1)
			})
		})

		Convey("When a results order is posted", func() {
			rec := post(mux, "/order", map[string]any{"kind": "results", "metric": "total", "athletes": finished()})

			Convey("Then it is grouped by category and sorted on the total", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Spec     string        `json:"spec"`
					Athletes []athleteBody `json:"athletes"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Spec, ShouldEqual, "results(total)")
				So(ids(body.Athletes), ShouldResemble, []string{"woman", "first", "second"})
				So(body.Athletes[1].Total, ShouldEqual, 250)
			})
		})

		Convey("When a team points order is posted for a club spread over categories", func() {
			recs := []athlete.Record{
				athletetest.New("top89").Category(m89).Club("Anjou").Lifts(120, -125, -125, 150, -155, -155).Record(),
				athletetest.New("b89").Category(m89).Club("Laval").Lifts(115, -120, -120, 145, -150, -150).Record(),
				athletetest.New("a73").Category(m73).Club("Laval").Lifts(110, -115, -115, 140, -145, -145).Record(),
			}
			rec := post(mux, "/order", map[string]any{"kind": "team_points", "metric": "total", "athletes": recs})

			Convey("Then the category winner of the club comes first with its points", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Athletes []athleteBody `json:"athletes"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(ids(body.Athletes), ShouldResemble, []string{"top89", "a73", "b89"})
				So(body.Athletes[1].Points["total"], ShouldEqual, 28)
				So(body.Athletes[2].Points["total"], ShouldEqual, 25)
			})
		})

		Convey("When the request is malformed", func() {
			cases := []struct {
				name string
				body any
				code string
			}{
				{"invalid json", "{not json", "bad_request"},
				{"unknown field", `{"kind":"lifting","bogus":1}`, "bad_request"},
				{"unknown kind", map[string]any{"kind": "alphabetical"}, "unknown_kind"},
				{"missing metric", map[string]any{"kind": "results"}, "bad_request"},
				{"unknown metric", map[string]any{"kind": "results", "metric": "wilks"}, "unknown_metric"},
				{"derived metric", map[string]any{"kind": "results", "metric": "snatch_cj_total"}, "metric_not_orderable"},
			}
			for _, tc := range cases {
				Convey(fmt.Sprintf("Then %s is a bad request", tc.name), func() {
					rec := post(mux, "/order", tc.body)
					So(rec.Code, ShouldEqual, http.StatusBadRequest)
					So(errorCode(rec), ShouldEqual, tc.code)
				})
			}
		})

		Convey("When more competitors are posted than allowed", func() {
			small := newMux(service.New(service.WithMaxAthletes(2)))
			rec := post(small, "/order", map[string]any{"kind": "lifting", "athletes": session()})

			Convey("Then the payload is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(errorCode(rec), ShouldEqual, "too_many_athletes")
			})
		})
	})
}

func TestRanksHandler(t *testing.T) {
	Convey("Given finished competitors", t, func() {
		mux := newMux(service.New())

		Convey("When ranks on the total are requested", func() {
			rec := post(mux, "/ranks", map[string]any{"metric": "total", "athletes": finished()})

			Convey("Then ranks and points are reported per competitor and participation", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Summaries []struct {
						Ranked int `json:"ranked"`
					} `json:"summaries"`
					Athletes []athleteBody `json:"athletes"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Summaries, ShouldHaveLength, 1)
				So(body.Summaries[0].Ranked, ShouldEqual, 3)

				So(ids(body.Athletes), ShouldResemble, []string{"second", "first", "woman"})
				So(body.Athletes[0].Ranks["total"], ShouldEqual, 2)
				So(body.Athletes[1].Ranks["total"], ShouldEqual, 1)
				So(body.Athletes[1].Points["total"], ShouldEqual, 28)
				So(body.Athletes[2].Ranks["total"], ShouldEqual, 1)
				So(body.Athletes[0].Participations, ShouldHaveLength, 1)
				So(body.Athletes[0].Participations[0].Category, ShouldEqual, "M89")
				So(body.Athletes[0].Participations[0].Ranks["total"], ShouldEqual, 2)
			})
		})

		Convey("When every metric is requested", func() {
			rec := post(mux, "/ranks", map[string]any{"metric": "all", "athletes": finished()})

			Convey("Then the summed discipline points are included", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Athletes []athleteBody `json:"athletes"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Athletes[1].Points["snatch_cj_total"], ShouldEqual, 28*3)
			})
		})

		Convey("When the summed discipline points are requested as a rank", func() {
			rec := post(mux, "/ranks", map[string]any{"metric": "snatch_cj_total", "athletes": finished()})

			Convey("Then the metric is refused", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(rec), ShouldEqual, "metric_not_orderable")
			})
		})
	})
}

func TestValueHandler(t *testing.T) {
	Convey("Given a finished competitor", t, func() {
		mux := newMux(service.New())
		rec := post(mux, "/value", map[string]any{"metric": "total", "athlete": finished()[1]})

		Convey("Then the resolved value is returned", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			var body struct {
				ID     string  `json:"id"`
				Metric string  `json:"metric"`
				Value  float64 `json:"value"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.ID, ShouldEqual, "first")
			So(body.Metric, ShouldEqual, "total")
			So(body.Value, ShouldEqual, 250)
		})

		Convey("Then an unknown metric is a bad request", func() {
			rec := post(mux, "/value", map[string]any{"metric": "nope", "athlete": finished()[1]})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(rec), ShouldEqual, "unknown_metric")
		})
	})
}

func TestResultsHandler(t *testing.T) {
	Convey("Given finished competitors in two categories", t, func() {
		mux := newMux(service.New())
		rec := post(mux, "/results/categories", map[string]any{"metric": "total", "athletes": finished()})

		Convey("Then one sorted list per category is returned", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			var body []struct {
				Category struct {
					Code string `json:"code"`
				} `json:"category"`
				Athletes []struct {
					ID    string  `json:"id"`
					Value float64 `json:"value"`
					Rank  int     `json:"rank"`
				} `json:"athletes"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body, ShouldHaveLength, 2)
			So(body[0].Category.Code, ShouldEqual, "W64")
			So(body[1].Category.Code, ShouldEqual, "M89")
			So(body[1].Athletes[0].ID, ShouldEqual, "first")
			So(body[1].Athletes[0].Rank, ShouldEqual, 1)
			So(body[1].Athletes[1].Value, ShouldEqual, 230)
		})
	})
}

func TestErrorMapping(t *testing.T) {
	Convey("Given a server whose passes fail", t, func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{fmt.Errorf("sort lifting: %w", compare.ErrPrecondition), http.StatusUnprocessableEntity, "precondition_failed"},
			{context.Canceled, http.StatusServiceUnavailable, "cancelled"},
			{fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
		}
		for _, tc := range cases {
			Convey(fmt.Sprintf("Then %q maps to %d", tc.err, tc.status), func() {
				mux := http.NewServeMux()
				svc := service.New()
				api.NewServer(failingDeps{err: tc.err}, svc).Register(context.Background(), mux)

				rec := post(mux, "/order", map[string]any{"kind": "lifting", "athletes": session()})
				So(rec.Code, ShouldEqual, tc.status)
				So(errorCode(rec), ShouldEqual, tc.code)
				So(strings.Contains(rec.Body.String(), tc.err.Error()), ShouldBeTrue)
			})
		}
	})
}
