package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/liftrank/internal/app"
	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/athlete/athletetest"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/scoring"
	"github.com/okian/liftrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(logger.WithLevel("error")); err != nil {
		panic(err)
	}
}

var (
	m73  = athletetest.Category("M73", athlete.Male, 73)
	m89  = athletetest.Category("M89", athlete.Male, 89)
	jr89 = athletetest.Category("JR89", athlete.Male, 89)
	w64  = athletetest.Category("W64", athlete.Female, 64)
)

func session() []athlete.Record {
	return []athlete.Record{
		athletetest.New("heavy").Category(m89).Start(1).Lifts(100).Request(105).Record(),
		athletetest.New("light").Category(m89).Start(2).Lifts(90).Request(95).Record(),
		athletetest.New("woman").Category(w64).Start(3).Lifts(70).Request(75).Record(),
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.MaxAthletes(), ShouldEqual, 500)
			So(svc.GetStats()["derive_coefficients"], ShouldEqual, true)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithMaxAthletes(2),
			service.WithDeriveCoefficients(false),
			service.WithOrderOptions(order.Options{RoundRobin: true}),
			service.WithLogger(logger.Named("test")),
		)

		Convey("Then they are applied", func() {
			So(svc.MaxAthletes(), ShouldEqual, 2)
			So(svc.GetStats()["options"], ShouldResemble, order.Options{RoundRobin: true})
		})
	})
}

func TestService_Order(t *testing.T) {
	Convey("Given a session in progress", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When the lifting order is requested with explanations", func() {
			res, err := svc.Order(ctx, service.OrderInput{
				Request:  order.Request{Kind: order.Lifting},
				Athletes: session(),
				Explain:  true,
			})

			Convey("Then the lightest request goes first", func() {
				So(err, ShouldBeNil)
				So(athletetest.IDs(res.Athletes), ShouldResemble, []string{"woman", "light", "heavy"})
				So(res.Spec, ShouldEqual, "lifting")
				So(res.Steps, ShouldContain, "progression")
			})

			Convey("Then every adjacent pair names its deciding step", func() {
				So(res.Explain, ShouldHaveLength, 2)
				So(res.Explain[0].Before, ShouldEqual, "woman")
				So(res.Explain[0].Decision.Step, ShouldEqual, "requested_weight")
				So(res.Explain[0].Decision.Result, ShouldEqual, -1)
			})
		})

		Convey("When request options override the service rules", func() {
			opts := order.Options{GenderOrder: true}
			recs := []athlete.Record{
				athletetest.New("man").Category(m89).Request(60).Record(),
				athletetest.New("woman").Category(w64).Request(70).Record(),
			}
			res, err := svc.Order(ctx, service.OrderInput{Request: order.Request{Kind: order.Lifting}, Options: &opts, Athletes: recs})

			Convey("Then the override is used", func() {
				So(err, ShouldBeNil)
				So(athletetest.IDs(res.Athletes), ShouldResemble, []string{"woman", "man"})
			})
		})

		Convey("When a record has no id", func() {
			rec := athletetest.New("").Category(m89).Record()
			res, err := svc.Order(ctx, service.OrderInput{Request: order.Request{Kind: order.Display}, Athletes: []athlete.Record{rec}})

			Convey("Then one is assigned", func() {
				So(err, ShouldBeNil)
				So(res.Athletes[0].ID(), ShouldNotBeEmpty)
			})
		})

		Convey("When the metric has no results order", func() {
			_, err := svc.Order(ctx, service.OrderInput{
				Request:  order.Request{Kind: order.Results, Metric: scoring.SnatchCjTotal},
				Athletes: session(),
			})

			Convey("Then the order error is returned", func() {
				So(errors.Is(err, order.ErrMetricNotOrderable), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Order(cancelled, service.OrderInput{Request: order.Request{Kind: order.Lifting}, Athletes: session()})

			Convey("Then no pass is run", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a club whose lifters compete in different categories", t, func() {
		svc := service.New()
		ctx := context.Background()
		recs := []athlete.Record{
			athletetest.New("top89").Category(m89).Club("Anjou").Start(1).Lifts(120, -125, -125, 150, -155, -155).Record(),
			athletetest.New("b89").Category(m89).Club("Laval").Start(2).Lifts(115, -120, -120, 145, -150, -150).Record(),
			athletetest.New("a73").Category(m73).Club("Laval").Start(3).Lifts(110, -115, -115, 140, -145, -145).Record(),
		}

		Convey("When the team points order on the total is requested", func() {
			res, err := svc.Order(ctx, service.OrderInput{
				Request:  order.Request{Kind: order.TeamPoints, Metric: scoring.Total},
				Athletes: recs,
			})

			Convey("Then points are assigned per category before sorting", func() {
				So(err, ShouldBeNil)
				So(res.Metrics, ShouldResemble, []scoring.Metric{scoring.Total})
				So(athletetest.IDs(res.Athletes), ShouldResemble, []string{"top89", "a73", "b89"})
				So(res.Athletes[1].Points(scoring.Total), ShouldEqual, 28)
				So(res.Athletes[2].Points(scoring.Total), ShouldEqual, 25)
			})
		})

		Convey("When the team points order on the summed disciplines is requested", func() {
			res, err := svc.Order(ctx, service.OrderInput{
				Request:  order.Request{Kind: order.TeamPoints, Metric: scoring.SnatchCjTotal},
				Athletes: recs,
			})

			Convey("Then all three disciplines are ranked first", func() {
				So(err, ShouldBeNil)
				So(res.Metrics, ShouldResemble, []scoring.Metric{scoring.Snatch, scoring.CleanJerk, scoring.Total})
				So(athletetest.IDs(res.Athletes), ShouldResemble, []string{"top89", "a73", "b89"})
				So(res.Athletes[1].Points(scoring.SnatchCjTotal), ShouldEqual, 84)
				So(res.Athletes[2].Points(scoring.SnatchCjTotal), ShouldEqual, 75)
			})
		})
	})

	Convey("Given a service with a small cap", t, func() {
		svc := service.New(service.WithMaxAthletes(2))

		Convey("When too many athletes are posted", func() {
			_, err := svc.Order(context.Background(), service.OrderInput{Request: order.Request{Kind: order.Lifting}, Athletes: session()})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrTooManyAthletes), ShouldBeTrue)
			})
		})
	})
}

func TestService_Rank(t *testing.T) {
	Convey("Given a finished competition", t, func() {
		c := m89
		c.WorldRecordTotal = 400
		recs := []athlete.Record{
			athletetest.New("a").Category(c).BodyWeight(88.5).Lifts(150, -155, -155, 180, -185, -185).Record(),
			athletetest.New("b").Category(c).BodyWeight(84.0).Lifts(148, -153, -153, 180, -185, -185).Record(),
			athletetest.New("c").Category(c).BodyWeight(86.0).Lifts(-150, -150, -150, 180, -185, -185).Record(),
		}
		svc := service.New()
		ctx := context.Background()

		Convey("When ranked on the total", func() {
			m := scoring.Total
			res, err := svc.Rank(ctx, service.RankInput{Metric: &m, Athletes: recs})

			Convey("Then ranks and points follow the results order", func() {
				So(err, ShouldBeNil)
				So(res.Metrics, ShouldResemble, []scoring.Metric{scoring.Total})
				So(res.Athletes[0].Rank(scoring.Total), ShouldEqual, 1)
				So(res.Athletes[1].Rank(scoring.Total), ShouldEqual, 2)
				So(res.Athletes[2].Rank(scoring.Total), ShouldEqual, 0)
				So(res.Athletes[1].Points(scoring.Total), ShouldEqual, 25)
				So(res.Summaries[0].Unscored, ShouldEqual, 1)
			})
		})

		Convey("When ranked on a derived coefficient", func() {
			m := scoring.BWSinclair
			res, err := svc.Rank(ctx, service.RankInput{Metric: &m, Athletes: recs})

			Convey("Then the lighter competitor with a similar total wins", func() {
				So(err, ShouldBeNil)
				So(res.Athletes[1].Rank(scoring.BWSinclair), ShouldEqual, 1)
				So(res.Athletes[0].Rank(scoring.BWSinclair), ShouldEqual, 2)
			})
		})

		Convey("When ranked on every metric", func() {
			res, err := svc.Rank(ctx, service.RankInput{Athletes: recs})

			Convey("Then every orderable metric is ranked", func() {
				So(err, ShouldBeNil)
				So(res.Summaries, ShouldHaveLength, len(scoring.Metrics())-1)
				So(res.Athletes[0].Rank(scoring.Robi), ShouldEqual, 1)
				So(res.Athletes[0].Points(scoring.SnatchCjTotal), ShouldBeGreaterThan, 0)
			})

			Convey("Then the stats count the passes", func() {
				stats := svc.GetStats()
				So(stats["rank_passes"], ShouldEqual, len(scoring.Metrics())-1)
				So(stats["athletes"], ShouldEqual, 3*(len(scoring.Metrics())-1))
			})
		})

		Convey("When coefficients are not derived", func() {
			plain := service.New(service.WithDeriveCoefficients(false))
			m := scoring.Robi
			res, err := plain.Rank(ctx, service.RankInput{Metric: &m, Athletes: recs})

			Convey("Then nobody scores", func() {
				So(err, ShouldBeNil)
				So(res.Summaries[0].Ranked, ShouldEqual, 0)
				So(res.Summaries[0].Unscored, ShouldEqual, 3)
			})
		})
	})
}

func TestService_Value(t *testing.T) {
	Convey("Given a record", t, func() {
		rec := athletetest.New("a").Category(m89).BodyWeight(88).Lifts(150, -155, -155, 180, -185, -185).Score(scoring.QPoints, 410).Record()
		svc := service.New()

		So(svc.Value(context.Background(), rec, scoring.Total), ShouldEqual, 330)
		So(svc.Value(context.Background(), rec, scoring.QPoints), ShouldEqual, 410)
		So(svc.Value(context.Background(), rec, scoring.BWSinclair), ShouldBeGreaterThan, 330)
	})
}

func TestService_CategoryResults(t *testing.T) {
	Convey("Given a junior eligible in the senior category", t, func() {
		recs := []athlete.Record{
			athletetest.New("senior").Category(m89).Lifts(120, -125, -125, 150, -155, -155).Record(),
			athletetest.New("junior").Category(jr89).Eligible(jr89, m89).Lifts(125, -130, -130, 150, -155, -155).Record(),
			athletetest.New("woman").Category(w64).Lifts(80, -85, -85, 100, -105, -105).Record(),
		}
		svc := service.New()

		res, err := svc.CategoryResults(context.Background(), scoring.Total, nil, recs)

		Convey("Then each category lists its own results", func() {
			So(err, ShouldBeNil)
			So(res, ShouldHaveLength, 3)
			So(res[0].Category.Code, ShouldEqual, "W64")

			byCode := map[string][]string{}
			for _, g := range res {
				byCode[g.Category.Code] = athletetest.IDs(g.Athletes)
			}
			So(byCode["M89"], ShouldResemble, []string{"junior", "senior"})
			So(byCode["JR89"], ShouldResemble, []string{"junior"})
		})

		Convey("Then views carry the category rank", func() {
			for _, g := range res {
				if g.Category.Code != "M89" {
					continue
				}
				So(g.Athletes[0].Rank(scoring.Total), ShouldEqual, 1)
				So(g.Athletes[1].Rank(scoring.Total), ShouldEqual, 2)
			}
		})
	})
}
