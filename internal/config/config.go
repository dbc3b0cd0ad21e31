package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env         string   // application environment (dev, test, prod)
	Port        string   // HTTP port to listen on
	DBDriver    string   // sqlite3 or mysql
	DBPath      string   // sqlite database file
	DBUser      string   // mysql username
	DBPass      string   // mysql password (optional)
	DBHost      string   // mysql host address
	DBPort      string   // mysql port number
	DBName      string   // mysql database name
	JWTSecret   string   // secret used to sign JWTs
	BcryptCost  int      // bcrypt cost for password hashing
	CORSOrigins []string // allowed browser origins
	SeedOnStart bool     // insert default users and sample data into empty tables
	LogLevel    string
	LogFormat   string // json or console
}

// devSecret is only accepted outside production.
const devSecret = "kruger-gateway-dev-secret"

// Load reads .env (when present) and then the process environment. Only
// JWT_SECRET is mandatory, and only when APP_ENV=prod.
func Load() (Config, error) {
	// a missing .env is the normal case in containers
	_ = godotenv.Load()

	cfg := Config{
		Env:         envStr("APP_ENV", "dev"),
		Port:        envStr("APP_PORT", "5000"),
		DBDriver:    strings.ToLower(envStr("DB_DRIVER", "sqlite3")),
		DBPath:      envStr("DB_PATH", "kruger_gateway.db"),
		DBUser:      envStr("DB_USER", "root"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      envStr("DB_HOST", "127.0.0.1"),
		DBPort:      envStr("DB_PORT", "3306"),
		DBName:      envStr("DB_NAME", "kruger_gateway"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		BcryptCost:  envInt("BCRYPT_COST", 12),
		CORSOrigins: splitList(envStr("CORS_ORIGINS", "http://localhost:3000")),
		SeedOnStart: envBool("SEED_ON_START", true),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LogFormat:   envStr("LOG_FORMAT", "console"),
	}

	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
		cfg.DBDriver = "sqlite3"
	case "mysql":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProd() {
			return Config{}, fmt.Errorf("missing required env var: JWT_SECRET")
		}
		cfg.JWTSecret = devSecret
	}
	return cfg, nil
}

// IsProd reports whether the service runs in production mode.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
