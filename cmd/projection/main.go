package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tb_analytics/pkg/config"
	"tb_analytics/pkg/core/income"
	"tb_analytics/pkg/core/ingest"
	"tb_analytics/pkg/core/project"
	"tb_analytics/pkg/core/regress"
	"tb_analytics/pkg/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment.")
	}

	configPath := flag.String("config", envOr("TB_CONFIG", "config.yaml"), "run configuration file")
	scenarioPath := flag.String("scenario", "", "optional hjson GDP scenario overriding the workbook forecast")
	debug := flag.Bool("debug", false, "dump the slope table and projection rows")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	source := &ingest.FileSource{
		IncidencePath:  cfg.IncidenceFile,
		IncidenceSheet: cfg.IncidenceSheet,
		MetaPath:       cfg.CountryMeta,
		GDPPath:        cfg.GDPForecast,
		GDPSheet:       cfg.GDPSheet,
	}

	obs, err := source.Observations()
	if err != nil {
		log.Fatal(err)
	}
	slopes, err := regress.EstimateSlopes(obs, models.AllIncomeGroups(),
		regress.Window{EndYear: cfg.SlopeWindow.EndYear})
	if err != nil {
		log.Fatal(err)
	}

	entity := cfg.Entity
	var forecast []models.GDPPoint
	var baseline models.Baseline
	if *scenarioPath != "" {
		scenario, err := config.LoadScenario(*scenarioPath)
		if err != nil {
			log.Fatal(err)
		}
		entity = scenario.Entity
		forecast = scenario.Points()
		baseline = scenario.Baseline()
	} else {
		if forecast, err = source.GDPForecast(entity); err != nil {
			log.Fatal(err)
		}
		if baseline, err = source.Baseline(entity); err != nil {
			log.Fatal(err)
		}
	}

	table, err := income.BuildProjection(forecast)
	if err != nil {
		log.Fatalf("Entity %s: %v", entity, err)
	}
	rows, err := project.Project(table, baseline, slopes)
	if err != nil {
		log.Fatalf("Entity %s: %v", entity, err)
	}

	if *debug {
		spew.Dump(slopes, rows)
	}

	// Locale printer only for magnitudes; it would group year digits too.
	p := message.NewPrinter(language.English)
	fmt.Printf("\nEffective slopes (evaluated %d → %d):\n", slopes.EvalStartYear, slopes.EvalEndYear)
	for _, g := range models.AllIncomeGroups() {
		if s, ok := slopes.Slope(g); ok {
			fmt.Printf("  %-20s  %+.2f / year\n", g, s)
		} else {
			fmt.Printf("  %-20s  (insufficient data)\n", g)
		}
	}

	fmt.Printf("\nSegmented projection for %s (baseline %.1f in %d):\n\n", entity, baseline.Incidence, baseline.Year)
	fmt.Printf("%6s  %12s  %-20s  %7s  %10s\n", "Year", "GDP/capita", "Income group", "Segment", "Incidence")
	for _, r := range rows {
		fmt.Printf("%6d  %12s  %-20s  %7d  %10s\n",
			r.Year, p.Sprintf("%.0f", r.GDP), r.Group, r.SegmentID, p.Sprintf("%.1f", r.PredictedIncidence))
	}
}
