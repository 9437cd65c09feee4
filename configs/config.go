package configs

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
		// bound on each command's write-through
		HandlerTimeout time.Duration `koanf:"handler_timeout"`
	} `koanf:"http"`

	Store struct {
		Driver    string `koanf:"driver"` // memory | redis | sql
		KeyPrefix string `koanf:"key_prefix"`
	} `koanf:"store"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	SQL struct {
		Dialect         string        `koanf:"dialect"` // postgres | mysql | sqlite
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"sql"`

	Idempotency struct {
		Driver string        `koanf:"driver"` // memory | redis
		TTL    time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Pricing struct {
		UnitPolicy string `koanf:"unit_policy"`
	} `koanf:"pricing"`

	Ledger struct {
		WalkInLabel string `koanf:"walk_in_label"`
		Timezone    string `koanf:"timezone"`
	} `koanf:"ledger"`

	Notice struct {
		TTL         time.Duration `koanf:"ttl"`
		CheckoutTTL time.Duration `koanf:"checkout_ttl"`
	} `koanf:"notice"`

	PreOrder struct {
		CaseInsensitiveMerge bool `koanf:"case_insensitive_merge"`
	} `koanf:"preorder"`

	Rabbit struct {
		Enabled  bool   `koanf:"enabled"`
		URL      string `koanf:"url"`
		Exchange string `koanf:"exchange"`
		// optional second dispatch feed; empty disables the consumer
		DispatchQueue string `koanf:"dispatch_queue"`
		DispatchKey   string `koanf:"dispatch_key"`
		Prefetch      int    `koanf:"prefetch"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Enabled bool     `koanf:"enabled"`
		Brokers []string `koanf:"brokers"`
		GroupID string   `koanf:"group_id"`
		Topic   string   `koanf:"topic"`
	} `koanf:"kafka"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix POS_, nested with __)
	// e.g. POS_STORE__DRIVER, POS_REDIS__PASSWORD
	if err := k.Load(env.Provider("POS_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "POS_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	switch c.Store.Driver {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required for store.driver=redis")
		}
	case "sql":
		switch c.SQL.Dialect {
		case "postgres", "mysql", "sqlite":
		default:
			return fmt.Errorf("sql.dialect must be postgres, mysql or sqlite, got %q", c.SQL.Dialect)
		}
		if c.SQL.DSN == "" {
			return fmt.Errorf("sql.dsn required for store.driver=sql")
		}
	default:
		return fmt.Errorf("store.driver must be memory, redis or sql, got %q", c.Store.Driver)
	}
	if c.Idempotency.Driver == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required for idempotency.driver=redis")
	}
	if c.Ledger.Timezone != "" {
		if _, err := time.LoadLocation(c.Ledger.Timezone); err != nil {
			return fmt.Errorf("ledger.timezone: %w", err)
		}
	}
	if c.Rabbit.Enabled && c.Rabbit.URL == "" {
		return fmt.Errorf("rabbitmq.url required when rabbitmq.enabled")
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("kafka.brokers and kafka.topic required when kafka.enabled")
	}
	return nil
}

// Location resolves ledger.timezone, falling back to the host zone.
func (c Config) Location() *time.Location {
	if c.Ledger.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Ledger.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
