// Package report renders a climate report as Markdown and HTML.
package report

import (
	"fmt"
	"math"
	"strings"

	"climatelab/app"
	"climatelab/domain/weather"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the report as a Markdown document with one section per
// derivation.
func Markdown(r *app.ClimateReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Climate Report\n\n")
	fmt.Fprintf(&b, "Generated %s · report %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 UTC"), r.ID)

	b.WriteString("## Station Coverage\n\n")
	if len(r.Ranges) == 0 {
		b.WriteString("No stations with dated observations.\n\n")
	} else {
		b.WriteString("| Station | Name | First | Last |\n|---|---|---|---|\n")
		for _, sr := range r.Ranges {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				sr.Station, sr.Name,
				sr.MinDate.Format(weather.DateLayout), sr.MaxDate.Format(weather.DateLayout))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Ideal Days (%s in [%g, %g])\n\n",
		r.Params.Ideal.Metric.Column(), r.Params.Ideal.Lower, r.Params.Ideal.Upper)
	if len(r.IdealMeans) == 0 {
		b.WriteString("No qualifying station-years.\n\n")
	} else {
		b.WriteString("| Station | Mean ideal days/year |\n|---|---|\n")
		for _, m := range r.IdealMeans {
			fmt.Fprintf(&b, "| %s | %.1f |\n", m.Station, m.MeanDays)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Non-Ideal Days (TMIN ≤ %g or TMAX ≥ %g)\n\n",
		r.Params.NonIdeal.ColdMax, r.Params.NonIdeal.HotMin)
	if len(r.NonIdeal) == 0 {
		b.WriteString("No station has both too-cold and too-hot years.\n\n")
	} else {
		b.WriteString("| Station | Too cold | Too hot | Non-ideal |\n|---|---|---|---|\n")
		for _, n := range r.NonIdeal {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", n.Station, n.TooCold, n.TooHot, n.NonIdeal)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Hardiness (%d-year rolling minimum average)\n\n", r.Params.Window)
	h := r.Hardiness
	if h == nil || len(h.Stations) == 0 {
		b.WriteString("No TMIN observations.\n\n")
	} else {
		b.WriteString("| Year | " + strings.Join(h.Stations, " | ") + " |\n")
		b.WriteString("|---" + strings.Repeat("|---", len(h.Stations)) + "|\n")
		for i, year := range h.Years {
			cells := make([]string, len(h.Stations))
			for j := range h.Stations {
				v := h.Rolling[i][j]
				if math.IsNaN(v) {
					cells[j] = "—"
				} else {
					cells[j] = fmt.Sprintf("%.1f", v)
				}
			}
			fmt.Fprintf(&b, "| %d | %s |\n", year, strings.Join(cells, " | "))
		}
		b.WriteString("\n")
	}

	if r.Map != nil {
		fmt.Fprintf(&b, "## Stations Mapped\n\n%d stations with coordinates (center %.2f, %.2f).\n",
			len(r.Map.Markers), r.Map.CenterLat, r.Map.CenterLng)
	}

	return b.String()
}

// HTML renders the report's Markdown as an HTML fragment.
func HTML(r *app.ClimateReport) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}
