// Package config собирает настройки сервера из переменных окружения (префикс MAW_).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"maw-server/internal/engine"
)

const envPrefix = "MAW_"

// Config - все настройки процесса
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"100ms"`
	DigestPeriod time.Duration `env:"DIGEST_PERIOD" envDefault:"30s"`
	AIPeriod     time.Duration `env:"AI_PERIOD" envDefault:"30s"`
	InboxSize    int           `env:"INBOX_SIZE" envDefault:"256"`
	Strict       bool          `env:"STRICT" envDefault:"false"`

	// WorldFile - YAML с описанием мира. Пусто - встроенный сценарий.
	WorldFile string `env:"WORLD_FILE"`
	// JournalPath - SQLite-журнал повествования. Пусто - журнал выключен.
	JournalPath string `env:"JOURNAL_PATH" envDefault:"data/journal.db"`
	// ReplayDir - куда сохранять записи партий. Пусто - запись выключена.
	ReplayDir string `env:"REPLAY_DIR" envDefault:"replays"`
	// ReplayMaxTicks - предел записи в тиках (сутки при шаге 100ms). 0 - без предела.
	ReplayMaxTicks int `env:"REPLAY_MAX_TICKS" envDefault:"864000"`
	// ReplayCheckpoint - как часто запись сбрасывается на диск во время игры
	ReplayCheckpoint time.Duration `env:"REPLAY_CHECKPOINT" envDefault:"1m"`
}

// Load читает конфиг из окружения процесса
func Load() (Config, error) {
	return load(env.Options{Prefix: envPrefix})
}

// LoadFrom читает конфиг из переданной мапы (для тестов и встраивания)
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Prefix: envPrefix, Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет, что периоды и размеры имеют смысл
func (c Config) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	if c.DigestPeriod <= 0 {
		errs = append(errs, fmt.Errorf("digest period must be positive, got %s", c.DigestPeriod))
	}
	if c.AIPeriod <= 0 {
		errs = append(errs, fmt.Errorf("ai period must be positive, got %s", c.AIPeriod))
	}
	if c.ReplayMaxTicks < 0 {
		errs = append(errs, fmt.Errorf("replay max ticks must not be negative, got %d", c.ReplayMaxTicks))
	}
	if c.ReplayCheckpoint <= 0 {
		errs = append(errs, fmt.Errorf("replay checkpoint must be positive, got %s", c.ReplayCheckpoint))
	}
	if c.InboxSize <= 0 {
		errs = append(errs, fmt.Errorf("inbox size must be positive, got %d", c.InboxSize))
	}
	return errors.Join(errs...)
}

// Engine возвращает настройки игрового цикла
func (c Config) Engine() engine.Config {
	return engine.Config{
		TickInterval: c.TickInterval,
		DigestPeriod: c.DigestPeriod,
		AIPeriod:     c.AIPeriod,
		InboxSize:    c.InboxSize,
		Strict:       c.Strict,
	}
}
