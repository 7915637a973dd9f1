package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Tenancy       TenancyConfig       `mapstructure:"tenancy"`
	Patients      PatientsConfig      `mapstructure:"patients"`
	Anthropometry AnthropometryConfig `mapstructure:"anthropometry"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Redis         RedisConfig         `mapstructure:"redis"`
	SMTP          SMTPConfig          `mapstructure:"smtp"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Log           LogConfig           `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	CORSOrigin     string        `mapstructure:"cors_origin"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

const (
	BackendORM = "orm"
	BackendSQL = "sql"

	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Backend         string        `mapstructure:"backend"`
	Dialect         string        `mapstructure:"dialect"`
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

// DSN returns the Postgres connection string
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

const (
	TenancySingle = "single"
	TenancyMulti  = "multi"
)

type TenancyConfig struct {
	Mode string `mapstructure:"mode"`
}

type PatientsConfig struct {
	SoftDelete bool `mapstructure:"soft_delete"`
}

const (
	BMIApplication = "application"
	BMIDatabase    = "database"
)

type AnthropometryConfig struct {
	BMI string `mapstructure:"bmi"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
	Issuer      string `mapstructure:"issuer"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	ResetURL string `mapstructure:"reset_url"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// envOverrides are the conventional unprefixed variables that hosting
// platforms set.
type envOverrides struct {
	Port        int    `envconfig:"PORT"`
	CORSOrigin  string `envconfig:"CORS_ORIGIN"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.cors_origin", "http://localhost:4200")
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("database.backend", BackendORM)
	v.SetDefault("database.dialect", DialectSQLite)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "nutri")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "data/nutri.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("tenancy.mode", TenancyMulti)
	v.SetDefault("patients.soft_delete", true)
	v.SetDefault("anthropometry.bmi", BMIApplication)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("jwt.issuer", "nutri-api")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.channel", "nutri.events")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "no-reply@nutri.local")
	v.SetDefault("smtp.reset_url", "http://localhost:4200/reset-password")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// LoadConfig reads config.yaml from the working directory or ./config,
// then applies NUTRI_* environment variables and the conventional PORT,
// CORS_ORIGIN and DATABASE_URL overrides. A .env file is loaded first when
// present. A missing config file is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("NUTRI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.CORSOrigin != "" {
		config.Server.CORSOrigin = env.CORSOrigin
	}
	if env.DatabaseURL != "" {
		config.Database.URL = env.DatabaseURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendORM:
		if c.Database.Dialect != DialectPostgres && c.Database.Dialect != DialectSQLite {
			return fmt.Errorf("invalid database.dialect %q", c.Database.Dialect)
		}
	case BackendSQL:
	default:
		return fmt.Errorf("invalid database.backend %q", c.Database.Backend)
	}
	if c.Tenancy.Mode != TenancySingle && c.Tenancy.Mode != TenancyMulti {
		return fmt.Errorf("invalid tenancy.mode %q", c.Tenancy.Mode)
	}
	if c.Anthropometry.BMI != BMIApplication && c.Anthropometry.BMI != BMIDatabase {
		return fmt.Errorf("invalid anthropometry.bmi %q", c.Anthropometry.BMI)
	}
	if c.Tenancy.Mode == TenancyMulti && c.JWT.Secret == "" {
		return errors.New("jwt.secret is required in multi tenancy mode")
	}
	return nil
}
