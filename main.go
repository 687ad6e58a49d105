package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"shift-planner/config"
	"shift-planner/forecast"
	"shift-planner/formatter"
	"shift-planner/metrics"
	"shift-planner/models"
	"shift-planner/parser"
	"shift-planner/scheduler"
	"shift-planner/staffing"
	"shift-planner/timeseries"
)

func main() {
	defaults := config.LoadDefaults()

	// Define flags
	input := flag.String("input", "", "Input CSV or XLSX file of hourly sales data (required)")
	format := flag.String("format", "text", "Output format: text|json|csv")
	metric := flag.String("metric", "transactions", "Demand metric to forecast: transactions|sales")
	view := flag.String("view", "plan", "Output view: plan|data|hourly|weekday|monthly")
	from := flag.String("from", "", "Only use observations on or after this date (YYYY-MM-DD)")
	to := flag.String("to", "", "Only use observations on or before this date (YYYY-MM-DD)")
	weekdays := flag.String("weekdays", "", "Only use observations on these weekdays, comma-separated 0-6 with 0=Monday (e.g., 0,5,6)")
	hourFrom := flag.Int("hour-from", -1, "Only use observations at or after this hour (0-23)")
	hourTo := flag.Int("hour-to", -1, "Only use observations at or before this hour (0-23)")
	salesCapacity := flag.Float64("sales-capacity", defaults.SalesCapacity, "Hourly sales one staff member can handle")
	txnCapacity := flag.Float64("txn-capacity", defaults.TxnCapacity, "Hourly transactions one staff member can handle")
	fixedStaff := flag.Int("fixed-staff", defaults.FixedStaff, "Minimum staff on the floor while open")
	budget := flag.Int("budget", defaults.Budget, "Total staff-hour budget to allocate (0 = no allocation pass)")
	days := flag.Int("days", defaults.ForecastDays, "Number of days to forecast")
	start := flag.String("start", "", "Forecast start date YYYY-MM-DD (default: day after last observation)")
	shiftsPath := flag.String("shifts", "", "YAML file defining shift windows (default: Morning/Midday/Closing)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	// Validate metric enum
	demandMetric := models.Metric(*metric)
	if demandMetric != models.MetricTransactions && demandMetric != models.MetricSales {
		fmt.Printf("Error: metric must be one of: transactions, sales (got: %s)\n", *metric)
		os.Exit(1)
	}

	// Validate view enum
	validViews := map[string]bool{"plan": true, "data": true, "hourly": true, "weekday": true, "monthly": true}
	if !validViews[*view] {
		fmt.Printf("Error: view must be one of: plan, data, hourly, weekday, monthly (got: %s)\n", *view)
		os.Exit(1)
	}

	windows, err := config.LoadShiftWindows(*shiftsPath)
	if err != nil {
		fmt.Printf("Error loading shift windows: %v\n", err)
		os.Exit(1)
	}

	// Open and parse input file
	file, err := os.Open(*input)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var result *parser.Result
	switch strings.ToLower(filepath.Ext(*input)) {
	case ".xlsx", ".xlsm":
		result, err = parser.ParseXLSX(file)
	default:
		result, err = parser.Parse(file)
	}
	if err != nil {
		fmt.Printf("Error parsing file: %v\n", err)
		os.Exit(1)
	}

	metrics.ResetPlannerGauges()
	metrics.ParserRowsTotal.Add(float64(len(result.Observations)))
	metrics.ParserRowsSkipped.Add(float64(result.Skipped))
	if result.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed rows\n", result.Skipped)
	}

	series := timeseries.Normalize(result.Observations)

	filter, err := buildFilter(*from, *to, *weekdays, *hourFrom, *hourTo)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	series = timeseries.Filter(series, filter)
	metrics.SeriesPointsTotal.Set(float64(series.Len()))

	// Summary views skip the forecasting pipeline entirely.
	if *view != "plan" {
		table, err := summaryTable(*view, series)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if *format == "csv" {
			fmt.Print(table.CSV())
		} else {
			fmt.Print(formatter.RenderTable(table))
		}
		return
	}

	// Fit once per dataset+metric; the fingerprint identifies the training
	// data for callers that cache models across runs.
	cfg := forecast.DefaultConfig()
	cfg.Seed = defaults.Seed
	fitStart := time.Now()
	model, err := forecast.Fit(series, demandMetric, cfg)
	if err != nil {
		fmt.Printf("Error fitting demand model: %v\n", err)
		os.Exit(1)
	}
	metrics.FitDurationSeconds.Observe(time.Since(fitStart).Seconds())

	horizonStart, err := resolveStart(*start, series)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	predictStart := time.Now()
	points, err := model.Predict(forecast.Horizon(horizonStart, *days))
	if err != nil {
		fmt.Printf("Error generating forecast: %v\n", err)
		os.Exit(1)
	}
	metrics.PredictDurationSeconds.Observe(time.Since(predictStart).Seconds())
	metrics.ForecastPointsTotal.Set(float64(len(points)))

	params := staffing.Params{
		SalesCapacity: *salesCapacity,
		TxnCapacity:   *txnCapacity,
		FixedStaff:    *fixedStaff,
	}
	requirements, err := staffing.FromForecast(points, demandMetric, params)
	if err != nil {
		fmt.Printf("Error estimating staffing: %v\n", err)
		os.Exit(1)
	}
	metrics.StaffRequiredTotal.Set(float64(scheduler.TotalRequired(requirements)))

	report := &formatter.PlanReport{
		Metric:       demandMetric,
		Fingerprint:  timeseries.Fingerprint(series),
		Observations: series.Len(),
		SkippedRows:  result.Skipped,
		Budget:       *budget,
		Forecast:     points,
		Requirements: requirements,
		ShiftWindows: windows,
		ShiftPlan:    staffing.AggregateShifts(requirements, windows),
	}

	if *budget > 0 {
		assignments, err := scheduler.Allocate(requirements, *budget)
		if err != nil {
			fmt.Printf("Error allocating schedule: %v\n", err)
			os.Exit(1)
		}
		report.Schedule = assignments
		assigned := scheduler.TotalAssigned(assignments)
		metrics.StaffAssignedTotal.Set(float64(assigned))
		metrics.StaffShortfallTotal.Set(float64(scheduler.TotalRequired(requirements) - assigned))
	}

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "shift_planner"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}

// buildFilter translates the CLI filter flags into series filter options.
func buildFilter(from, to, weekdays string, hourFrom, hourTo int) (timeseries.FilterOptions, error) {
	var opts timeseries.FilterOptions
	days, err := timeseries.ParseWeekdays(weekdays)
	if err != nil {
		return opts, fmt.Errorf("invalid -weekdays value: %w", err)
	}
	opts.Weekdays = days
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return opts, fmt.Errorf("invalid -from date %q: %w", from, err)
		}
		opts.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return opts, fmt.Errorf("invalid -to date %q: %w", to, err)
		}
		// Inclusive through the end of the day.
		opts.To = t.Add(23 * time.Hour)
	}
	if hourFrom >= 0 || hourTo >= 0 {
		opts.HourRange = true
		opts.HourFrom = 0
		opts.HourTo = 23
		if hourFrom >= 0 {
			opts.HourFrom = hourFrom
		}
		if hourTo >= 0 {
			opts.HourTo = hourTo
		}
	}
	return opts, nil
}

// summaryTable builds the requested analysis view over the series.
func summaryTable(view string, series *models.DemandSeries) (formatter.Table, error) {
	switch view {
	case "data":
		return formatter.SeriesTable(series), nil
	case "hourly":
		return formatter.HourlySummaryTable(timeseries.HourlySummaries(series)), nil
	case "weekday":
		return formatter.WeekdaySummaryTable(timeseries.WeekdaySummaries(series)), nil
	case "monthly":
		return formatter.MonthlySummaryTable(timeseries.MonthlySummaries(series)), nil
	default:
		return formatter.Table{}, fmt.Errorf("view must be one of: plan, data, hourly, weekday, monthly (got: %s)", view)
	}
}

// resolveStart picks the forecast start: the -start flag when given,
// otherwise midnight after the last observed hour.
func resolveStart(flagValue string, series *models.DemandSeries) (time.Time, error) {
	if flagValue != "" {
		t, err := time.Parse("2006-01-02", flagValue)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid -start date %q: %w", flagValue, err)
		}
		return t, nil
	}
	last := timeseries.LastTimestamp(series)
	if last.IsZero() {
		return time.Time{}, fmt.Errorf("no observations to forecast from")
	}
	day := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())
	return day.AddDate(0, 0, 1), nil
}
