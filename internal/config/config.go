package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	LogLevel string

	// shared score cache for the cached solver
	RedisURL       string
	RedisPassword  string
	RedisDB        int
	SolverCacheTTL time.Duration

	// offline table of solved positions
	TableDriver          string // sqlite, postgres or none
	TablePath            string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	SolverTableSize int
	HardDepth       int
	MoveTimeout     time.Duration
	HintTimeout     time.Duration
	MaxRejections   int

	Player1Glyph string
	Player2Glyph string

	PrecomputeDepth   int
	PrecomputeWorkers int
}

const (
	TableDriverSQLite   = "sqlite"
	TableDriverPostgres = "postgres"
	TableDriverNone     = "none"
)

func LoadConfig() *Config {
	tableDriver := strings.ToLower(GetEnv("TABLE_DRIVER", TableDriverSQLite))
	switch tableDriver {
	case TableDriverSQLite, TableDriverPostgres, TableDriverNone:
	default:
		log.Warn().Str("value", tableDriver).Msg("unknown TABLE_DRIVER, disabling the offline table")
		tableDriver = TableDriverNone
	}

	return &Config{
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		RedisURL:       GetEnv("REDIS_URL", ""),
		RedisPassword:  GetEnv("REDIS_PASSWORD", ""),
		RedisDB:        GetEnvAsInt("REDIS_DB", 0),
		SolverCacheTTL: GetEnvAsDuration("SOLVER_CACHE_TTL", 0),

		TableDriver:          tableDriver,
		TablePath:            GetEnv("TABLE_PATH", ""),
		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		SolverTableSize: GetEnvAsInt("SOLVER_TABLE_SIZE", 8388593),
		HardDepth:       GetEnvAsInt("HARD_DEPTH", 7),
		MoveTimeout:     GetEnvAsDuration("MOVE_TIMEOUT", 10*time.Second),
		HintTimeout:     GetEnvAsDuration("HINT_TIMEOUT", 3*time.Second),
		MaxRejections:   GetEnvAsInt("MAX_REJECTIONS", 3),

		Player1Glyph: GetEnv("PLAYER1_GLYPH", "🟡"),
		Player2Glyph: GetEnv("PLAYER2_GLYPH", "🔴"),

		PrecomputeDepth:   GetEnvAsInt("PRECOMPUTE_DEPTH", 8),
		PrecomputeWorkers: GetEnvAsInt("PRECOMPUTE_WORKERS", 4),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go durations ("90s", "2m"); 0 disables the setting.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).
			Msg("invalid duration value, using default")
		return defaultValue
	}
	return value
}
