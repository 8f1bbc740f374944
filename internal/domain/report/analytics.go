package report

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/okian/empdash/internal/domain/aggregate"
	"github.com/okian/empdash/internal/domain/employee"
)

// Insights are the headline KPIs of the analytics view.
type Insights struct {
	AvgPerformance     string    `json:"avgPerformance" yaml:"avgPerformance"` // 2 dp
	AvgSalary          string    `json:"avgSalary" yaml:"avgSalary"`           // 0 dp
	TopPerformer       Highlight `json:"topPerformer" yaml:"topPerformer"`
	BestCostEfficiency Highlight `json:"bestCostEfficiency" yaml:"bestCostEfficiency"`
}

// Highlight names the employee behind a KPI.
type Highlight struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (h Highlight) String() string { return fmt.Sprintf("%s (%s)", h.Name, h.Value) }

// Card is a titled KPI as shown in the insight panel.
type Card struct {
	Title string `json:"title" yaml:"title"`
	Value string `json:"value" yaml:"value"`
}

// Cards lists the insights in panel order.
func (i Insights) Cards() []Card {
	return []Card{
		{Title: "Avg Performance Rating", Value: i.AvgPerformance},
		{Title: "Average Salary", Value: i.AvgSalary},
		{Title: "Top Performer", Value: i.TopPerformer.String()},
		{Title: "Best Cost Efficiency (ROI)", Value: i.BestCostEfficiency.String()},
	}
}

// BuildInsights computes the KPIs. It fails with aggregate.ErrEmptyInput
// when records is empty.
func BuildInsights(records []employee.Enriched) (Insights, error) {
	avgRating, err := aggregate.Mean(records, aggregate.PerformanceRating)
	if err != nil {
		return Insights{}, err
	}
	avgSalary, err := aggregate.Mean(records, aggregate.Salary)
	if err != nil {
		return Insights{}, err
	}
	top, err := aggregate.Max(records, aggregate.PerformanceRating)
	if err != nil {
		return Insights{}, err
	}
	roi, err := aggregate.Max(records, aggregate.CostEfficiency)
	if err != nil {
		return Insights{}, err
	}

	return Insights{
		AvgPerformance: decimal.NewFromFloat(avgRating).StringFixed(2),
		AvgSalary:      decimal.NewFromFloat(avgSalary).StringFixed(0),
		TopPerformer: Highlight{
			Name:  top.FirstName,
			Value: strconv.FormatFloat(top.PerformanceRating, 'f', -1, 64),
		},
		BestCostEfficiency: Highlight{
			Name:  roi.FirstName,
			Value: roi.CostEfficiency.StringFixed(3),
		},
	}, nil
}

// Point is one labelled value of a chart series.
type Point struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Charts holds the series of the analytics view.
type Charts struct {
	Performance []Point                      `json:"performance" yaml:"performance"`
	Salary      []Point                      `json:"salary" yaml:"salary"`
	Promotion   []Point                      `json:"promotion" yaml:"promotion"`
	Departments []employee.DepartmentSummary `json:"departments" yaml:"departments"`
	Tiers       []employee.TierSummary       `json:"tiers" yaml:"tiers"`
}

// Series maps every record to a point labelled by first name, in input order.
func Series(records []employee.Enriched, field aggregate.Field) []Point {
	out := make([]Point, len(records))
	for i, r := range records {
		out[i] = Point{Label: r.FirstName, Value: field.Value(r)}
	}
	return out
}

// BuildCharts computes every chart series.
func BuildCharts(records []employee.Enriched) Charts {
	return Charts{
		Performance: Series(records, aggregate.PerformanceRating),
		Salary:      Series(records, aggregate.Salary),
		Promotion:   Series(records, aggregate.PromotionScore),
		Departments: aggregate.GroupByDepartment(records),
		Tiers:       aggregate.GroupByTier(records),
	}
}

// Leaderboard is the top-N of one field.
type Leaderboard struct {
	Field string      `json:"field" yaml:"field"`
	Rows  []LeaderRow `json:"rows" yaml:"rows"`
}

// LeaderRow is one ranked employee.
type LeaderRow struct {
	Rank       int           `json:"rank" yaml:"rank"`
	Name       string        `json:"name" yaml:"name"`
	Department string        `json:"department" yaml:"department"`
	Tier       employee.Tier `json:"tier" yaml:"tier"`
	Value      float64       `json:"value" yaml:"value"`
}

// BuildLeaderboard ranks the top n records by field. Equal values keep
// input order.
func BuildLeaderboard(records []employee.Enriched, field aggregate.Field, n int) (Leaderboard, error) {
	top, err := aggregate.TopN(records, field, n)
	if err != nil {
		return Leaderboard{}, err
	}
	lb := Leaderboard{Field: field.Name, Rows: make([]LeaderRow, len(top))}
	for i, r := range top {
		lb.Rows[i] = LeaderRow{
			Rank:       i + 1,
			Name:       r.FullName(),
			Department: r.Department,
			Tier:       r.Tier,
			Value:      field.Value(r),
		}
	}
	return lb, nil
}
