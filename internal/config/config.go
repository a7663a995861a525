package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by StoreConfig.Driver.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
)

// Selection modes for the browse page.
const (
	SelectionMulti  = "multi"
	SelectionSingle = "single"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// SupabaseConfig holds the hosted PostgREST endpoint and its API key.
type SupabaseConfig struct {
	URL       string
	Key       string
	Schema    string
	BatchSize int
}

// StoreConfig describes the remote statute table and how to reach it.
type StoreConfig struct {
	Driver            string
	Table             string
	RecordType        string
	JurisdictionField string
	TimeoutSec        int
	Supabase          SupabaseConfig
}

// Timeout returns the per-request deadline for store calls.
func (s StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// BrowseConfig tunes the browse page.
type BrowseConfig struct {
	SelectionMode   string
	EscapeWildcards bool
	CacheTTLSec     int
}

// CacheTTL returns how long query results are memoized. Zero disables caching.
func (b BrowseConfig) CacheTTL() time.Duration {
	return time.Duration(b.CacheTTLSec) * time.Second
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	LogTZ    string
	Store    StoreConfig
	Browse   BrowseConfig
	Database DatabaseConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		LogTZ:   getEnv("LOG_TZ", "UTC"),
		Store: StoreConfig{
			Driver:            strings.ToLower(getEnv("STORE_DRIVER", DriverPostgREST)),
			Table:             getEnv("STORE_TABLE", "state_statutes"),
			RecordType:        getEnv("STORE_RECORD_TYPE", "law_text"),
			JurisdictionField: getEnv("STORE_JURISDICTION_FIELD", "state"),
			TimeoutSec:        getEnvInt("STORE_TIMEOUT_SEC", 15),
			Supabase: SupabaseConfig{
				URL:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
				Key:       getEnv("SUPABASE_KEY", ""),
				Schema:    getEnv("SUPABASE_SCHEMA", ""),
				BatchSize: getEnvInt("SUPABASE_BATCH_SIZE", 1000),
			},
		},
		Browse: BrowseConfig{
			SelectionMode:   strings.ToLower(getEnv("SELECTION_MODE", SelectionMulti)),
			EscapeWildcards: getEnvBool("SEARCH_ESCAPE_WILDCARDS", true),
			CacheTTLSec:     getEnvInt("CACHE_TTL_SEC", 600),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "require"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
	}
}

// Location resolves LogTZ, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.LogTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate reports every missing or invalid setting at once.
func (c *AppConfig) Validate() error {
	var missing, invalid []string

	switch c.Store.Driver {
	case DriverPostgREST:
		if c.Store.Supabase.URL == "" {
			missing = append(missing, "SUPABASE_URL")
		} else if !strings.HasPrefix(c.Store.Supabase.URL, "http://") && !strings.HasPrefix(c.Store.Supabase.URL, "https://") {
			invalid = append(invalid, "SUPABASE_URL")
		}
		if c.Store.Supabase.Key == "" {
			missing = append(missing, "SUPABASE_KEY")
		}
	case DriverPostgres:
		if c.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	if c.Store.Table == "" {
		missing = append(missing, "STORE_TABLE")
	}
	if c.Store.TimeoutSec <= 0 {
		invalid = append(invalid, "STORE_TIMEOUT_SEC")
	}
	if c.Browse.CacheTTLSec < 0 {
		invalid = append(invalid, "CACHE_TTL_SEC")
	}
	if c.Browse.SelectionMode != SelectionMulti && c.Browse.SelectionMode != SelectionSingle {
		invalid = append(invalid, "SELECTION_MODE")
	}

	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}
	return &Error{Driver: c.Store.Driver, Missing: missing, Invalid: invalid}
}

// Error is a startup configuration failure. It carries enough detail to
// show the operator how to fix the environment.
type Error struct {
	Driver  string
	Missing []string
	Invalid []string
}

func (e *Error) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Remediation returns an example environment block for the selected driver.
func (e *Error) Remediation() string {
	if e.Driver == DriverPostgres {
		return `STORE_DRIVER=postgres
DB_HOST=db.your-project-id.supabase.co
DB_PORT=5432
DB_USER=postgres
DB_PASSWORD=your-database-password
DB_NAME=postgres`
	}
	return fmt.Sprintf(`STORE_DRIVER=%s
SUPABASE_URL=https://your-project-id.supabase.co
SUPABASE_KEY=your-anon-or-service-role-key`, DriverPostgREST)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
