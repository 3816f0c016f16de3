// Package config предоставляет структуры и функции для загрузки конфига.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// DriverSQLite — встроенная база в файле на устройстве (по умолчанию).
	DriverSQLite = "sqlite"
	// DriverPostgres — внешний сервер PostgreSQL.
	DriverPostgres = "postgres"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Storage    `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	RateLimit  `yaml:"rate_limit"`
}

// Storage структура для настройки хранилища.
// Для sqlite используется Path (":memory:" — база в памяти), для postgres — DSN.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	Path   string `yaml:"path" env:"STORAGE_PATH" env-default:"hotel-book.db"`
	DSN    string `yaml:"dsn" env:"STORAGE_DSN"`
}

// HTTPServer структура для настройки локального сервера для UI
type HTTPServer struct {
	Enabled     bool          `yaml:"enabled" env:"HTTP_ENABLED"` // По умолчанию true, см. defaults
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"127.0.0.1:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RateLimit структура для настройки ограничения частоты запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла path с переопределением из переменных окружения.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file: %s - does not exist", path)
	}
	cfg := defaults()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaults возвращает значения, которые нельзя задать через env-default:
// cleanenv подставляет env-default вместо нулевого значения, и явное
// false из файла терялось бы.
func defaults() Config {
	return Config{
		HTTPServer: HTTPServer{Enabled: true},
	}
}

// Validate проверяет согласованность настроек хранилища.
func (s Storage) Validate() error {
	switch s.Driver {
	case DriverSQLite:
		if s.Path == "" {
			return fmt.Errorf("storage.path is required for driver %s", s.Driver)
		}
	case DriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %s", s.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  Path: %s\n"+
			"HTTPServer:\n"+
			"  Enabled: %t\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.Driver,
		c.Path,
		c.Enabled,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RPS,
		c.Burst,
	)
}
