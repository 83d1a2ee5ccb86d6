package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"climatelab/app"
	"climatelab/domain/table"
	"climatelab/domain/weather"
	"climatelab/internal"
	"climatelab/internal/analysis"
	"climatelab/internal/chart"
	"climatelab/internal/dataset"
	"climatelab/internal/geo"
	"climatelab/internal/report"
	"climatelab/ports"
)

const usage = `climatelab <command> [flags]

Commands:
  merge      combine a new export with an existing one, dropping duplicate rows
  ranges     first and last observation date per station
  ideal      ideal-day counts per station and year
  nonideal   average too-cold and too-hot days per station
  hardiness  rolling average of annual minimum temperatures
  chart      monthly temperature distribution description
  map        station map description
  report     full climate report (markdown)
`

func main() {
	log := internal.NewDefaultLogger().With("cli")
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "merge":
		err = runMerge(os.Args[2:])
	case "ranges":
		err = runRanges(os.Args[2:])
	case "ideal":
		err = runIdeal(os.Args[2:])
	case "nonideal":
		err = runNonIdeal(os.Args[2:])
	case "hardiness":
		err = runHardiness(os.Args[2:])
	case "chart":
		err = runChart(os.Args[2:])
	case "map":
		err = runMap(os.Args[2:])
	case "report":
		err = runReport(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error("%s: %v", os.Args[1], err)
		os.Exit(1)
	}
}

func readFrame(path string) (*table.Frame, error) {
	var reader ports.FrameReader = dataset.NewReader(path)
	return reader.Read()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	newFile := fs.String("new", "", "path to the new export")
	existing := fs.String("existing", "", "path to the existing dataset")
	persist := fs.Bool("persist", false, "overwrite the existing file with the merged rows")
	fs.Parse(args)
	if *newFile == "" || *existing == "" {
		return fmt.Errorf("merge requires -new and -existing")
	}
	result, err := dataset.UpdateFile(*newFile, *existing, *persist)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runRanges(args []string) error {
	fs := flag.NewFlagSet("ranges", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	ranges, err := analysis.StationDateRanges(frame)
	if err != nil {
		return err
	}
	return printJSON(ranges)
}

func runIdeal(args []string) error {
	fs := flag.NewFlagSet("ideal", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	metric := fs.String("metric", string(weather.MetricTMax), "temperature metric (TMAX, TMIN or TAVG)")
	lower := fs.Float64("lower", 60, "inclusive lower bound")
	upper := fs.Float64("upper", 75, "inclusive upper bound")
	zeroFill := fs.Bool("zero-fill", false, "emit zero counts for station-years with no ideal days")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	m, err := weather.ParseMetric(*metric)
	if err != nil {
		return err
	}
	counts, err := analysis.IdealDayCounts(frame, analysis.IdealDayParams{
		Metric: m, Lower: *lower, Upper: *upper, ZeroFill: *zeroFill,
	})
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{
		"counts": counts,
		"means":  analysis.StationIdealMeans(counts),
	})
}

func runNonIdeal(args []string) error {
	fs := flag.NewFlagSet("nonideal", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	coldMax := fs.Float64("cold-max", 32, "TMIN at or below this counts as too cold")
	hotMin := fs.Float64("hot-min", 85, "TMAX at or above this counts as too hot")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	days, err := analysis.NonIdealDayCounts(frame, analysis.NonIdealParams{
		ColdMax: *coldMax, HotMin: *hotMin,
	})
	if err != nil {
		return err
	}
	return printJSON(days)
}

func runHardiness(args []string) error {
	fs := flag.NewFlagSet("hardiness", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	window := fs.Int("window", analysis.DefaultHardinessWindow, "rolling window in years")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	tbl, err := analysis.Hardiness(frame, *window)
	if err != nil {
		return err
	}
	return printJSON(tbl)
}

func runChart(args []string) error {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	metric := fs.String("metric", string(weather.MetricTMax), "temperature metric (TMAX, TMIN or TAVG)")
	yMin := fs.Float64("y-min", -60, "exclusive lower bound for plotted values")
	yMax := fs.Float64("y-max", 130, "exclusive upper bound for plotted values")
	compareYear := fs.Int("compare-year", 0, "build a TMAX/TMIN comparison line chart for this year instead")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	if *compareYear != 0 {
		columns := []string{weather.MetricTMax.Column(), weather.MetricTMin.Column()}
		spec, err := chart.TempComparison(frame, columns, *compareYear)
		if err != nil {
			return err
		}
		return printJSON(spec)
	}
	m, err := weather.ParseMetric(*metric)
	if err != nil {
		return err
	}
	spec, err := chart.MonthlyDistribution(frame, m, *yMin, *yMax)
	if err != nil {
		return err
	}
	return printJSON(spec)
}

func runMap(args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	p := geo.DefaultMapParams()
	fs.Float64Var(&p.CenterLat, "center-lat", p.CenterLat, "initial map center latitude")
	fs.Float64Var(&p.CenterLng, "center-lng", p.CenterLng, "initial map center longitude")
	fs.IntVar(&p.Zoom, "zoom", p.Zoom, "initial zoom level")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	spec, err := geo.StationMap(frame, p)
	if err != nil {
		return err
	}
	return printJSON(spec)
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	file := fs.String("file", "", "dataset file (csv or xlsx)")
	window := fs.Int("window", analysis.DefaultHardinessWindow, "hardiness window in years")
	asJSON := fs.Bool("json", false, "emit the report as JSON instead of markdown")
	asHTML := fs.Bool("html", false, "emit the report as rendered HTML")
	fs.Parse(args)
	frame, err := readFrame(*file)
	if err != nil {
		return err
	}
	params := app.DefaultReportParams()
	params.Window = *window
	svc := app.NewReportService(internal.NewDefaultLogger())
	rep, err := svc.Generate(context.Background(), frame, params)
	if err != nil {
		return err
	}
	switch {
	case *asJSON:
		return printJSON(rep)
	case *asHTML:
		_, err = os.Stdout.Write(report.HTML(rep))
		return err
	default:
		_, err = fmt.Print(report.Markdown(rep))
		return err
	}
}
