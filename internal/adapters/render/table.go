package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/empdash/internal/domain/employee"
	"github.com/okian/empdash/internal/domain/report"
)

type tableRenderer struct {
	theme    Theme
	color    bool
	barWidth int
}

func (r *tableRenderer) Format() Format { return FormatTable }

// Render writes the dashboard as plain text sections. Colour escapes are
// only ever placed in the last column so tab alignment is unaffected.
func (r *tableRenderer) Render(w io.Writer, d *report.Dashboard) error {
	if d == nil {
		return ErrNilDashboard
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Employee Dashboard  [%s view, %s theme]\n", d.View, r.theme.Name)
	fmt.Fprintf(bw, "source %s (v%d)  year %d  showing %d of %d employees%s\n",
		d.Source, d.Version, d.CurrentYear, d.Total, d.Dataset, filterSuffix(d.Filter))

	if d.View.ShowsAnalytics() {
		r.writeInsights(bw, d.Insights)
		if d.Charts != nil {
			r.writeBars(bw, "Performance Rating Comparison", d.Charts.Performance, 1)
			r.writeBars(bw, "Salary Distribution", d.Charts.Salary, 0)
			r.writeBars(bw, "Promotion Readiness Score", d.Charts.Promotion, 2)
			r.writeDepartments(bw, d.Charts.Departments)
			r.writeTiers(bw, d.Charts.Tiers)
		}
		r.writeLeaderboard(bw, d.Leaderboard)
	}
	if d.View.ShowsGrid() && d.Grid != nil {
		r.writeGrid(bw, d.Grid)
	}
	r.writeSkipped(bw, d.Skipped)

	return bw.Flush()
}

func filterSuffix(f report.FilterSummary) string {
	var parts []string
	if f.Department != "" {
		parts = append(parts, "department="+f.Department)
	}
	if f.Tier != "" {
		parts = append(parts, "tier="+string(f.Tier))
	}
	if f.ActiveOnly {
		parts = append(parts, "active only")
	}
	if len(parts) == 0 {
		return ""
	}
	return "  (" + strings.Join(parts, ", ") + ")"
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func (r *tableRenderer) paint(hex, s string) string {
	if !r.color {
		return s
	}
	return ansi(hex, s)
}

func (r *tableRenderer) writeInsights(w io.Writer, in *report.Insights) {
	section(w, "Insights")
	if in == nil {
		fmt.Fprintln(w, "no employees match")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range in.Cards() {
		fmt.Fprintf(tw, "%s\t%s\n", c.Title, r.paint(r.theme.Accent, c.Value))
	}
	_ = tw.Flush()
}

// bar draws a proportional bar of value against limit.
func (r *tableRenderer) bar(value, limit float64) string {
	if limit <= 0 || math.IsNaN(value) || value <= 0 {
		return ""
	}
	n := int(math.Round(value / limit * float64(r.barWidth)))
	n = min(max(n, 0), r.barWidth)
	return strings.Repeat("#", n)
}

func (r *tableRenderer) writeBars(w io.Writer, title string, points []report.Point, prec int) {
	section(w, title)
	if len(points) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	var limit float64
	for _, p := range points {
		limit = math.Max(limit, p.Value)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Label, strconv.FormatFloat(p.Value, 'f', prec, 64), r.bar(p.Value, limit))
	}
	_ = tw.Flush()
}

func (r *tableRenderer) writeDepartments(w io.Writer, depts []employee.DepartmentSummary) {
	section(w, "Employees per Department")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPARTMENT\tCOUNT\tAVG RATING\tAVG SALARY\tAVG PROJECTS")
	for _, d := range depts {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.0f\t%.1f\n", d.Department, d.Count, d.AvgPerformance, d.AvgSalary, d.AvgProjects)
	}
	_ = tw.Flush()
}

func (r *tableRenderer) writeTiers(w io.Writer, tiers []employee.TierSummary) {
	section(w, "Tier Distribution")
	var limit float64
	for _, t := range tiers {
		limit = math.Max(limit, float64(t.Count))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range tiers {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Tier, t.Count,
			r.paint(r.theme.BandColor(t.Tier), r.bar(float64(t.Count), limit)))
	}
	_ = tw.Flush()
}

func (r *tableRenderer) writeLeaderboard(w io.Writer, lb *report.Leaderboard) {
	if lb == nil {
		return
	}
	section(w, "Top "+strconv.Itoa(len(lb.Rows))+" by "+lb.Field)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tDEPARTMENT\tVALUE\tTIER")
	for _, row := range lb.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", row.Rank, row.Name, row.Department,
			strconv.FormatFloat(row.Value, 'f', -1, 64), r.paint(r.theme.BandColor(row.Tier), string(row.Tier)))
	}
	_ = tw.Flush()
}

func (r *tableRenderer) writeGrid(w io.Writer, g *report.Grid) {
	title := fmt.Sprintf("Employees (page %d of %d, %d rows)", g.Page, max(g.TotalPages, 1), g.TotalRows)
	if g.SortBy != "" {
		dir := "asc"
		if g.Descending {
			dir = "desc"
		}
		title += fmt.Sprintf(" sorted by %s %s", g.SortBy, dir)
	}
	section(w, title)
	if len(g.Rows) == 0 {
		fmt.Fprintln(w, "(no rows on this page)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tDEPARTMENT\tPOSITION\tLOCATION\tSKILLS\tSTATUS\tPROJECTS\tSALARY\tPERFORMANCE")
	for _, row := range g.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%.0f\t%s\n",
			row.Name, row.Email, row.Department, row.Position, row.Location,
			row.Skills, row.Status, row.Projects, row.Salary, r.performance(row.Performance))
	}
	_ = tw.Flush()
}

// performance draws the rating bar of a grid cell, e.g. "[########--] 4.7".
func (r *tableRenderer) performance(c report.PerformanceCell) string {
	if !c.Valid {
		return c.Label
	}
	const width = 10
	filled := int(math.Round(c.Percent / 100 * width))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return "[" + r.paint(r.theme.BandColor(c.Band), bar) + "] " + c.Label
}

func (r *tableRenderer) writeSkipped(w io.Writer, failures []employee.Failure) {
	if len(failures) == 0 {
		return
	}
	section(w, fmt.Sprintf("Skipped records (%d)", len(failures)))
	for _, f := range failures {
		who := f.Email
		if who == "" {
			who = f.ID
		}
		if who == "" {
			who = "-"
		}
		fmt.Fprintf(w, "#%d %s: %s\n", f.Index, who, f.Reason)
	}
}
