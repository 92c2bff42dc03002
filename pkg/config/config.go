package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHub   GitHubConfig
	Analysis AnalysisConfig
	Report   ReportConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type GitHubConfig struct {
	// Token is the fallback token for accounts without one of their own.
	Token string
	// RequestsPerSecond paces per-commit detail fetches.
	RequestsPerSecond float64
}

type AnalysisConfig struct {
	Branch             string
	WeekFile           string
	AccountsFile       string
	Directory          string
	Extension          string
	LocalBaseDir       string
	FormatterCommand   string
	ExcludeFirstCommit bool
}

type ReportConfig struct {
	OutputDir string
}

type DatabaseConfig struct {
	Path string
}

type ServerConfig struct {
	Port string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		GitHub: GitHubConfig{
			Token:             getEnv("GITHUB_TOKEN", ""),
			RequestsPerSecond: getEnvAsFloat("GITHUB_REQUESTS_PER_SECOND", 5),
		},
		Analysis: AnalysisConfig{
			Branch:             getEnv("ANALYSIS_BRANCH", "main"),
			WeekFile:           getEnv("WEEK_FILE", "week_information.txt"),
			AccountsFile:       getEnv("ACCOUNTS_FILE", "users_account.txt"),
			Directory:          getEnv("ANALYSIS_DIRECTORY", ""),
			Extension:          getEnv("ANALYSIS_EXTENSION", ".py"),
			LocalBaseDir:       getEnv("LOCAL_BASE_DIR", ""),
			FormatterCommand:   getEnv("FORMATTER_COMMAND", "black -q -"),
			ExcludeFirstCommit: getEnvAsBool("EXCLUDE_FIRST_COMMIT", true),
		},
		Report: ReportConfig{
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "."),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./gitweek.db"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
