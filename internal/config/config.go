package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Jira     JiraConfig
	Report   ReportConfig
	Parser   ParserConfig
	Calendar CalendarConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	IdentityHeader        string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// JiraConfig describes the upstream search endpoint and how tickets are
// read from it. BaseURLs is an ordered candidate list; earlier entries
// are preferred and later ones are tried only after a failure.
type JiraConfig struct {
	BaseURLs           []string
	BearerToken        string
	PageSize           int
	TimeoutSeconds     int
	BrandLabels        []string
	BrandFieldIDs      []string
	ProjectTypeFieldID string
	RAGFieldID         string
	StartDateFieldID   string
	ClassificationTag  string
}

// ReportConfig holds the report identity and refresh schedule.
type ReportConfig struct {
	Owner       string
	ScopeNote   string
	Stream      string
	RefreshCron string
}

// ParserConfig points at the AI parsing collaborator.
type ParserConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// CalendarConfig points at the calendar/email bridge.
type CalendarConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	baseURLs := splitCSV(getEnv("JIRA_BASE_URLS", "https://jira-proxy.internal/api"))
	if len(baseURLs) == 0 {
		return nil, fmt.Errorf("JIRA_BASE_URLS must name at least one endpoint")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-insights"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			IdentityHeader:        getEnv("IDENTITY_HEADER", "X-Forwarded-User"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Jira: JiraConfig{
			BaseURLs:           baseURLs,
			BearerToken:        os.Getenv("JIRA_BEARER_TOKEN"),
			PageSize:           getEnvAsInt("JIRA_PAGE_SIZE", 100),
			TimeoutSeconds:     getEnvAsInt("JIRA_TIMEOUT_SECONDS", 30),
			BrandLabels:        splitCSV(getEnv("JIRA_BRAND_LABELS", "selleys,yates")),
			BrandFieldIDs:      splitCSV(getEnv("JIRA_BRAND_FIELD_IDS", "customfield_11200")),
			ProjectTypeFieldID: getEnv("JIRA_PROJECT_TYPE_FIELD_ID", "customfield_11100"),
			RAGFieldID:         getEnv("JIRA_RAG_FIELD_ID", "customfield_11300"),
			StartDateFieldID:   getEnv("JIRA_START_DATE_FIELD_ID", "customfield_11400"),
			ClassificationTag:  getEnv("JIRA_CLASSIFICATION_TAG", "AI Opportunity"),
		},
		Report: ReportConfig{
			Owner:       getEnv("REPORT_OWNER", ""),
			ScopeNote:   getEnv("REPORT_SCOPE_NOTE", ""),
			Stream:      getEnv("REPORT_STREAM", "Consumer"),
			RefreshCron: getEnv("REPORT_REFRESH_CRON", "*/30 * * * *"),
		},
		Parser: ParserConfig{
			BaseURL:        getEnv("PARSER_BASE_URL", ""),
			APIKey:         os.Getenv("PARSER_API_KEY"),
			TimeoutSeconds: getEnvAsInt("PARSER_TIMEOUT_SECONDS", 60),
		},
		Calendar: CalendarConfig{
			BaseURL:        getEnv("CALENDAR_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("CALENDAR_TIMEOUT_SECONDS", 30),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream call timeout.
func (j JiraConfig) Timeout() time.Duration {
	if j.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(j.TimeoutSeconds) * time.Second
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
