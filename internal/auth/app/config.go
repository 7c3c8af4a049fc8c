package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/idgate/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Issuer    string        `env:"AUTH_ISSUER"    envDefault:"idgate"` // issuer claim stamped on and required of every token
	Algorithm string        `env:"AUTH_ALGORITHM" envDefault:"EdDSA"`  // EdDSA or ES256
	NumKeys   int           `env:"AUTH_NUM_KEYS"  envDefault:"3"`      // signing keys to generate, 1 to 10
	TokenTTL  time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`     // lifetime of full session tokens

	DatabaseFile        string `env:"AUTH_DATABASE_FILE"         envDefault:"auth.db"`
	PepperFile          string `env:"AUTH_PEPPER_FILE"           envDefault:"pepper"`
	BootstrapAdminEmail string `env:"AUTH_BOOTSTRAP_ADMIN_EMAIL"` // registers with ADMIN when set

	FrontendURL string     `env:"FRONTEND_URL" envDefault:"http://localhost:3000"` // base of emailed verification links
	Mail        MailConfig `envPrefix:"MAIL_"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"` // json or text
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// MailConfig is the SMTP relay. An empty Host logs notifications instead
// of sending them.
type MailConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"      envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"      envDefault:"no-reply@localhost"`
	FromName string `env:"FROM_NAME" envDefault:"idgate"`
	TLS      bool   `env:"TLS"       envDefault:"true"`
}

// LoadConfig reads the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.Algorithm {
	case jwtx.AlgorithmEdDSA, jwtx.AlgorithmES256:
	default:
		errs = append(errs, fmt.Errorf("AUTH_ALGORITHM must be %s or %s, got %q",
			jwtx.AlgorithmEdDSA, jwtx.AlgorithmES256, c.Algorithm))
	}
	if c.NumKeys < 1 || c.NumKeys > 10 {
		errs = append(errs, fmt.Errorf("AUTH_NUM_KEYS must be between 1 and 10, got %d", c.NumKeys))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.Mail.Host != "" && c.Mail.From == "" {
		errs = append(errs, errors.New("MAIL_FROM is required when MAIL_HOST is set"))
	}

	return errors.Join(errs...)
}
