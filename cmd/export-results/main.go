package main

import (
	"flag"
	"log"
	"os"

	"moonmash/internal/config"
	"moonmash/internal/db"
)

func main() {
	outPath := flag.String("out", "results.csv", "path to write the csv, - for stdout")
	limit := flag.Int("limit", 20, "number of recent tournaments to export, 0 for all")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config failed: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	rows, err := db.Results(conn, *limit)
	if err != nil {
		log.Fatalf("failed to read results: %v", err)
	}

	out := os.Stdout
	if *outPath != "-" {
		file, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *outPath, err)
		}
		defer file.Close()
		out = file
	}
	if err := db.WriteResultsCSV(out, rows); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
	log.Printf("exported %d image rows", len(rows))
}
