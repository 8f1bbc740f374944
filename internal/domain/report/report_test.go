package report_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okian/empdash/internal/domain/aggregate"
	"github.com/okian/empdash/internal/domain/employee"
	"github.com/okian/empdash/internal/domain/enrich"
	"github.com/okian/empdash/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func sample() report.Input {
	raw := []employee.Record{
		{FirstName: "Ana", LastName: "Ng", Email: "ana@x.io", Department: "Engineering", HireDate: "2020-01-01", PerformanceRating: 4.8, Salary: 120000, ProjectsCompleted: 14, IsActive: true, Skills: []string{"Go", "SQL", "Kafka"}},
		{FirstName: "Ben", Email: "ben@x.io", Department: "Sales", HireDate: "2019-01-01", PerformanceRating: 3.6, Salary: 65000, ProjectsCompleted: 5, IsActive: true},
		{FirstName: "Cy", Email: "cy@x.io", Department: "Engineering", HireDate: "2021-01-01", PerformanceRating: 4.1, Salary: 95000, ProjectsCompleted: 9, IsActive: false},
		{FirstName: "Dee", Email: "dee@x.io", Department: "Design", HireDate: "2017-01-01", PerformanceRating: 3.2, Salary: 95000, ProjectsCompleted: 4, IsActive: true},
		{FirstName: "Eli", Email: "eli@x.io", Department: "Sales", HireDate: "2022-01-01", PerformanceRating: 4.5, Salary: 70000, ProjectsCompleted: 7, IsActive: true},
	}
	res := enrich.Derive(raw, 2025)
	return report.Input{Source: "test", Version: 7, CurrentYear: 2025, Records: res.Records, Failures: res.Failures}
}

func TestBuilder_Build(t *testing.T) {
	Convey("Given a builder with a fixed id and clock", t, func() {
		ctx := context.Background()
		at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		b := report.NewBuilder(
			report.WithIDGenerator(func() string { return "dash-1" }),
			report.WithClock(func() time.Time { return at }),
		)
		in := sample()

		Convey("When building the full dashboard", func() {
			d, err := b.Build(ctx, in, report.DefaultQuery())
			So(err, ShouldBeNil)

			Convey("Then the header echoes the input", func() {
				So(d.ID, ShouldEqual, "dash-1")
				So(d.GeneratedAt.Equal(at), ShouldBeTrue)
				So(d.View, ShouldEqual, report.ViewAll)
				So(d.Source, ShouldEqual, "test")
				So(d.Version, ShouldEqual, uint64(7))
				So(d.Total, ShouldEqual, 5)
				So(d.Dataset, ShouldEqual, 5)
			})

			Convey("Then insights match the KPIs", func() {
				So(d.Insights, ShouldNotBeNil)
				So(d.Insights.AvgPerformance, ShouldEqual, "4.04")
				So(d.Insights.AvgSalary, ShouldEqual, "89000")
				So(d.Insights.TopPerformer.String(), ShouldEqual, "Ana (4.8)")
				So(d.Insights.BestCostEfficiency.String(), ShouldEqual, "Eli (0.064)")

				cards := d.Insights.Cards()
				So(len(cards), ShouldEqual, 4)
				So(cards[0].Title, ShouldEqual, "Avg Performance Rating")
				So(cards[3].Value, ShouldEqual, "Eli (0.064)")
			})

			Convey("Then charts carry one point per employee", func() {
				So(len(d.Charts.Performance), ShouldEqual, 5)
				So(d.Charts.Performance[0], ShouldResemble, report.Point{Label: "Ana", Value: 4.8})
				So(d.Charts.Salary[1].Value, ShouldEqual, 65000.0)
				So(d.Charts.Promotion[0].Value, ShouldAlmostEqual, 8.48, 1e-9)
				So(len(d.Charts.Departments), ShouldEqual, 3)
				So(len(d.Charts.Tiers), ShouldEqual, 4)
			})

			Convey("Then the leaderboard ranks by salary and keeps ties in order", func() {
				So(d.Leaderboard.Field, ShouldEqual, "salary")
				So(len(d.Leaderboard.Rows), ShouldEqual, 3)
				So(d.Leaderboard.Rows[0].Name, ShouldEqual, "Ana Ng")
				So(d.Leaderboard.Rows[1].Name, ShouldEqual, "Cy")
				So(d.Leaderboard.Rows[2].Name, ShouldEqual, "Dee")
				So(d.Leaderboard.Rows[2].Rank, ShouldEqual, 3)
			})

			Convey("Then the grid holds the first page", func() {
				So(d.Grid.TotalRows, ShouldEqual, 5)
				So(d.Grid.TotalPages, ShouldEqual, 1)
				So(len(d.Grid.Rows), ShouldEqual, 5)
				So(d.Grid.Rows[0].Skills, ShouldEqual, "Go, SQL +1 more")
				So(d.Grid.Rows[2].Status, ShouldEqual, report.StatusInactive)
			})
		})

		Convey("When filtering by department", func() {
			q := report.DefaultQuery()
			q.Filter = aggregate.Filter{Department: "sales"}
			d, err := b.Build(ctx, in, q)

			Convey("Then only matching records are aggregated", func() {
				So(err, ShouldBeNil)
				So(d.Total, ShouldEqual, 2)
				So(d.Dataset, ShouldEqual, 5)
				So(d.Filter.Department, ShouldEqual, "sales")
				So(d.Insights.TopPerformer.Name, ShouldEqual, "Eli")
				So(len(d.Charts.Departments), ShouldEqual, 1)
			})
		})

		Convey("When the grid is sorted by salary, highest first", func() {
			q := report.DefaultQuery()
			q.Sort = aggregate.BySalary
			q.Descending = true
			q.PageSize = 2
			q.Page = 2
			d, err := b.Build(ctx, in, q)

			Convey("Then paging walks the sorted order", func() {
				So(err, ShouldBeNil)
				So(d.Grid.SortBy, ShouldEqual, "salary")
				So(d.Grid.Descending, ShouldBeTrue)
				So(len(d.Grid.Rows), ShouldEqual, 2)
				So(d.Grid.Rows[0].Name, ShouldEqual, "Dee")
				So(d.Grid.Rows[1].Name, ShouldEqual, "Eli")
			})

			Convey("And the charts keep dataset order", func() {
				So(d.Charts.Performance[0].Label, ShouldEqual, "Ana")
			})
		})

		Convey("When the grid is sorted by name", func() {
			q := report.DefaultQuery()
			q.Sort = aggregate.ByName
			d, err := b.Build(ctx, in, q)

			So(err, ShouldBeNil)
			So(d.Grid.Descending, ShouldBeFalse)
			So(d.Grid.Rows[0].Name, ShouldEqual, "Ana Ng")
			So(d.Grid.Rows[4].Name, ShouldEqual, "Eli")
		})

		Convey("When the filter matches nothing", func() {
			q := report.DefaultQuery()
			q.Filter = aggregate.Filter{Department: "Legal"}
			d, err := b.Build(ctx, in, q)

			Convey("Then insights are omitted and the rest is empty", func() {
				So(err, ShouldBeNil)
				So(d.Insights, ShouldBeNil)
				So(d.Charts.Performance, ShouldBeEmpty)
				So(len(d.Charts.Tiers), ShouldEqual, 4)
				So(d.Leaderboard.Rows, ShouldBeEmpty)
				So(d.Grid.Rows, ShouldBeEmpty)
				So(d.Grid.TotalPages, ShouldEqual, 0)
			})
		})

		Convey("When only the grid is requested", func() {
			q := report.DefaultQuery()
			q.View = report.ViewGrid
			q.PageSize = 2
			q.Page = 3
			d, err := b.Build(ctx, in, q)

			Convey("Then analytics sections are absent", func() {
				So(err, ShouldBeNil)
				So(d.Insights, ShouldBeNil)
				So(d.Charts, ShouldBeNil)
				So(d.Leaderboard, ShouldBeNil)
				So(d.Grid.TotalPages, ShouldEqual, 3)
				So(len(d.Grid.Rows), ShouldEqual, 1)
				So(d.Grid.Rows[0].Name, ShouldEqual, "Eli")
			})
		})

		Convey("When only analytics is requested", func() {
			q := report.DefaultQuery()
			q.View = report.ViewAnalytics
			d, err := b.Build(ctx, in, q)

			So(err, ShouldBeNil)
			So(d.Grid, ShouldBeNil)
			So(d.Insights, ShouldNotBeNil)
		})

		Convey("When the query is invalid", func() {
			q := report.DefaultQuery()
			q.TopN = -1
			_, err := b.Build(ctx, in, q)
			So(errors.Is(err, report.ErrInvalidQuery), ShouldBeTrue)
			So(errors.Is(err, aggregate.ErrInvalidLimit), ShouldBeTrue)

			q = report.DefaultQuery()
			q.Page = 0
			_, err = b.Build(ctx, in, q)
			So(errors.Is(err, report.ErrInvalidQuery), ShouldBeTrue)

			q = report.DefaultQuery()
			q.View = "kanban"
			_, err = b.Build(ctx, in, q)
			So(errors.Is(err, report.ErrUnknownView), ShouldBeTrue)
		})

		Convey("When the input carries failures", func() {
			in.Failures = []employee.Failure{{Index: 9, Reason: "bad hire date"}}
			d, err := b.Build(ctx, in, report.DefaultQuery())

			So(err, ShouldBeNil)
			So(len(d.Skipped), ShouldEqual, 1)
		})
	})

	Convey("Given a default builder", t, func() {
		d, err := report.NewBuilder().Build(context.Background(), sample(), report.DefaultQuery())

		Convey("Then dashboards get a UUID", func() {
			So(err, ShouldBeNil)
			_, perr := uuid.Parse(d.ID)
			So(perr, ShouldBeNil)
		})
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given five records", t, func() {
		records := sample().Records

		Convey("Then pages split evenly and the last is partial", func() {
			g := report.Paginate(records, 2, 2)
			So(g.TotalPages, ShouldEqual, 3)
			So(len(g.Rows), ShouldEqual, 2)
			So(g.Rows[0].Name, ShouldEqual, "Cy")
		})

		Convey("Then a page past the end is empty but keeps totals", func() {
			g := report.Paginate(records, 4, 2)
			So(g.Rows, ShouldBeEmpty)
			So(g.TotalRows, ShouldEqual, 5)
			So(g.TotalPages, ShouldEqual, 3)
		})

		Convey("Then an enormous page number stays empty", func() {
			var g report.Grid
			So(func() { g = report.Paginate(records, math.MaxInt, 10) }, ShouldNotPanic)
			So(g.Rows, ShouldBeEmpty)
			So(g.TotalRows, ShouldEqual, 5)
			So(g.TotalPages, ShouldEqual, 1)
		})

		Convey("Then an enormous page size holds everything on one page", func() {
			g := report.Paginate(records, 1, math.MaxInt)
			So(g.TotalPages, ShouldEqual, 1)
			So(len(g.Rows), ShouldEqual, 5)

			g = report.Paginate(records, 2, math.MaxInt)
			So(g.Rows, ShouldBeEmpty)
		})

		Convey("Then an empty record set has no pages", func() {
			g := report.Paginate(nil, 1, 10)
			So(g.TotalPages, ShouldEqual, 0)
			So(g.Rows, ShouldBeEmpty)
		})
	})
}

func TestCells(t *testing.T) {
	Convey("Given ratings to render", t, func() {
		Convey("Then a valid rating gets a label, bar and band", func() {
			c := report.NewPerformanceCell(4.7)
			So(c.Valid, ShouldBeTrue)
			So(c.Label, ShouldEqual, "4.7")
			So(c.Percent, ShouldAlmostEqual, 94, 1e-9)
			So(c.Band, ShouldEqual, employee.TierElite)

			c = report.NewPerformanceCell(3.25)
			So(c.Label, ShouldEqual, "3.3")
			So(c.Band, ShouldEqual, employee.TierLow)
		})

		Convey("Then the bar is capped at 100", func() {
			So(report.NewPerformanceCell(5.5).Percent, ShouldEqual, 100.0)
		})

		Convey("Then missing or invalid ratings render N/A", func() {
			for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
				c := report.NewPerformanceCell(r)
				So(c.Valid, ShouldBeFalse)
				So(c.Label, ShouldEqual, report.NotAvailable)
			}
		})
	})

	Convey("Given skill lists", t, func() {
		So(report.SkillsLabel(nil), ShouldEqual, "")
		So(report.SkillsLabel([]string{"Go"}), ShouldEqual, "Go")
		So(report.SkillsLabel([]string{"Go", "SQL"}), ShouldEqual, "Go, SQL")
		So(report.SkillsLabel([]string{"Go", "SQL", "K8s", "AWS"}), ShouldEqual, "Go, SQL +2 more")
	})

	Convey("Given views by name", t, func() {
		v, err := report.ParseView(" Grid ")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, report.ViewGrid)
		So(v.ShowsAnalytics(), ShouldBeFalse)

		v, err = report.ParseView("")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, report.ViewAll)

		_, err = report.ParseView("kanban")
		So(errors.Is(err, report.ErrUnknownView), ShouldBeTrue)
	})
}
