package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string        `env:"PORT,            default=5000"`
	Env            string        `env:"ENV,             default=development"`
	JWTSecret      string        `env:"JWT_SECRET,      required"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	LogPretty      bool          `env:"LOG_PRETTY,      default=false"`
	BcryptCost     int           `env:"BCRYPT_COST,     default=10"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS,    default=*"`
	Store          string        `env:"STORE,           default=mongo"`

	Mongo   MongoConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Contact ContactConfig
	Admin   AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

// RedisConfig is optional; an empty Addr disables the profile cache.
type RedisConfig struct {
	Addr            string        `env:"REDIS_ADDR"`
	Password        string        `env:"REDIS_PASSWORD"`
	DB              int           `env:"REDIS_DB,          default=0"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL, default=5m"`
}

type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT,    default=587"`
	User     string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT, default=10s"`
}

type ContactConfig struct {
	Receiver string `env:"CONTACT_RECEIVER"`
	Workers  int    `env:"CONTACT_WORKERS, default=2"`
}

// AdminConfig optionally bootstraps an administrator at startup when none
// with that email exists. It is how the memory store gets a login.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrator"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Enabled reports whether both email and password are set.
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

// Enabled reports whether enough is set to send real mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadForTool is Load for offline commands that never sign tokens; a missing
// JWT_SECRET is tolerated.
func LoadForTool(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, toolLookuper(envconfig.OsLookuper()))
}

func toolLookuper(l envconfig.Lookuper) envconfig.Lookuper {
	return envconfig.MultiLookuper(l, envconfig.MapLookuper(map[string]string{"JWT_SECRET": "unused"}))
}

// LoadWith decodes configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	switch cfg.Store {
	case StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("config: unknown STORE %q", cfg.Store)
	}
	if cfg.SMTP.Enabled() && cfg.Contact.Receiver == "" {
		cfg.Contact.Receiver = cfg.SMTP.User
	}
	return &cfg, nil
}
