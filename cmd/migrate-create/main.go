package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var migrationName = regexp.MustCompile(`^[a-z0-9_]+$`)

func main() {
	name := flag.String("name", "", "migration name, snake_case")
	dir := flag.String("dir", filepath.Join("db", "migrations"), "migrations directory")
	flag.Parse()

	if *name == "" {
		log.Fatal("migration name is required")
	}
	if !migrationName.MatchString(*name) {
		log.Fatal("migration name must be snake_case")
	}

	base := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102150405"), *name)
	upPath := filepath.Join(*dir, base+".up.sql")
	downPath := filepath.Join(*dir, base+".down.sql")

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}
	if err := createFile(upPath, "-- "+*name+" (up)\n"); err != nil {
		log.Fatalf("create up migration: %v", err)
	}
	if err := createFile(downPath, "-- "+*name+" (down)\n"); err != nil {
		log.Fatalf("create down migration: %v", err)
	}
	log.Printf("created %s and %s", upPath, downPath)
}

// createFile refuses to overwrite an existing migration.
func createFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
