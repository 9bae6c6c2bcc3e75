package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/icsbenin/candidature/middlewares"
	"github.com/icsbenin/candidature/pkg/janitor"
	"github.com/icsbenin/candidature/pkg/logger"
	"github.com/icsbenin/candidature/pkg/mailer"
	"github.com/icsbenin/candidature/pkg/mailer/resend"
	"github.com/icsbenin/candidature/pkg/mailer/ses"
	"github.com/icsbenin/candidature/pkg/mailer/smtp"
	"github.com/icsbenin/candidature/pkg/storage"
)

// Storage backends for Config.StorageBackend.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

var errInvalidConfig = errors.New("invalid configuration")

// Config is the server configuration, read from the environment.
type Config struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"5000"`
	EmailTo         []string      `env:"EMAIL_TO,required" envSeparator:","`
	Timezone        string        `env:"TIMEZONE" envDefault:"Africa/Porto-Novo"`
	StorageBackend  string        `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir       string        `env:"UPLOAD_DIR" envDefault:"./uploads"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"2m"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"3m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	S3      storage.Config `envPrefix:"S3_"`
	Mailer  mailer.Config
	Resend  resend.Config
	SMTP    smtp.Config
	SES     ses.Config
	Logger  logger.Config
	CORS    middlewares.CORSConfig
	Janitor janitor.Config
}

// Address returns the listen address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: TIMEZONE %q: %w", errInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// loadConfig reads .env when present, then parses the environment.
func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.EmailTo = trimAll(c.EmailTo)
	if len(c.EmailTo) == 0 {
		return fmt.Errorf("%w: EMAIL_TO has no address", errInvalidConfig)
	}

	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("%w: READ_TIMEOUT and WRITE_TIMEOUT must be positive", errInvalidConfig)
	}
	if c.WriteTimeout < c.ReadTimeout {
		return fmt.Errorf("%w: WRITE_TIMEOUT %s is shorter than READ_TIMEOUT %s", errInvalidConfig, c.WriteTimeout, c.ReadTimeout)
	}

	switch c.StorageBackend {
	case BackendLocal, BackendS3:
	default:
		return fmt.Errorf("%w: unknown STORAGE_BACKEND %q", errInvalidConfig, c.StorageBackend)
	}

	switch c.Mailer.Provider {
	case mailer.ProviderResend, mailer.ProviderSMTP, mailer.ProviderSES:
	default:
		return fmt.Errorf("%w: unknown MAIL_PROVIDER %q", errInvalidConfig, c.Mailer.Provider)
	}
	return nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
