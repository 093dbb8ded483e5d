package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath  string
	DataDir string

	SourceDir     string // downloaded workbooks, archives and HTML pages
	ExtractedDir  string // stage 1 output: raw CSVs per year
	NormalizedDir string // stage 2 output: normalized CSVs per year
	TablesDir     string // stage 3 output: canonical tables per year
	SchemaDir     string // stage 4 output: schema summaries

	YearFrom int
	YearTo   int

	NormalizeWorkers int
	ExportWorkbooks  bool // additionally write each year batch as one xlsx

	LogLevel string
	LogJSON  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}
	dataDir := getEnv("DATA_DIR", filepath.Join(cwd, "data"))

	cfg := Config{
		DBPath:  getEnv("DB_PATH", filepath.Join(dataDir, "runs.db")),
		DataDir: dataDir,

		SourceDir:     getEnv("SOURCE_DIR", filepath.Join(dataDir, "source")),
		ExtractedDir:  getEnv("EXTRACTED_DIR", filepath.Join(dataDir, "extracted")),
		NormalizedDir: getEnv("NORMALIZED_DIR", filepath.Join(dataDir, "normalized")),
		TablesDir:     getEnv("TABLES_DIR", filepath.Join(dataDir, "tables")),
		SchemaDir:     getEnv("SCHEMA_DIR", filepath.Join(dataDir, "schemas")),

		YearFrom: getEnvInt("YEAR_FROM", 2014),
		YearTo:   getEnvInt("YEAR_TO", 2024),

		NormalizeWorkers: getEnvInt("NORMALIZE_WORKERS", runtime.NumCPU()),
		ExportWorkbooks:  getEnvBool("EXPORT_XLSX", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),
	}

	if cfg.YearFrom > cfg.YearTo {
		return Config{}, fmt.Errorf("invalid year range: %d-%d", cfg.YearFrom, cfg.YearTo)
	}
	if cfg.NormalizeWorkers < 1 {
		cfg.NormalizeWorkers = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
