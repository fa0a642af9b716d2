package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"

	"tb_analytics/pkg/config"
	"tb_analytics/pkg/core/ingest"
	"tb_analytics/pkg/core/pipeline"
	"tb_analytics/pkg/report"
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
	debug := flag.Bool("debug", false, "dump the raw run result")
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

	res, err := pipeline.New(source, cfg.SlopeWindow).Run(cfg.Entity)
	if err != nil {
		log.Fatalf("Run failed for %s: %v", cfg.Entity, err)
	}
	if *debug {
		spew.Dump(res)
	}

	doc := report.BuildMarkdown(res)
	if !report.ValidateMarkdown(doc) {
		log.Fatal("generated report is not valid Markdown")
	}
	html, err := report.RenderHTML(doc)
	if err != nil {
		log.Fatal(err)
	}

	dir, err := report.WriteArtifacts(cfg.OutputDir, res.RunID, doc, html)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Report written to %s\n", dir)
}
