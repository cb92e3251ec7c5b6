package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Bot difficulty levels understood by the bot factory.
const (
	BotLevelEasy   = "easy"
	BotLevelMedium = "medium"
	BotLevelHard   = "hard"
)

// MaxAdvisorTimeoutMs keeps an advisor call inside one match tick (1 s).
const MaxAdvisorTimeoutMs = 800

// AdvisorConfig points at the optional external card advisor.
type AdvisorConfig struct {
	URL       string `json:"url"`
	Issuer    string `json:"issuer"`
	TimeoutMs int    `json:"timeout_ms"`
}

// Enabled reports whether an advisor endpoint is configured.
func (a AdvisorConfig) Enabled() bool {
	return a.URL != ""
}

type GameConfig struct {
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before filling a solo human lobby with bots.
	BotAutoFillDelaySeconds int           `json:"bot_auto_fill_delay_seconds"`
	BotMinDelaySeconds      int           `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int           `json:"bot_max_delay_seconds"`
	DefaultBotLevel         string        `json:"default_bot_level"`
	Advisor                 AdvisorConfig `json:"advisor"`
}

// Defaults returns the configuration used when no file was loaded.
func Defaults() GameConfig {
	return GameConfig{
		TurnDurationSeconds:     30,
		BotAutoFillDelaySeconds: 5,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		DefaultBotLevel:         BotLevelMedium,
		Advisor: AdvisorConfig{
			Issuer:    "mendikot",
			TimeoutMs: 600,
		},
	}
}

// normalize replaces unset or invalid values with defaults.
func (c *GameConfig) normalize() {
	d := Defaults()
	if c.TurnDurationSeconds <= 0 {
		c.TurnDurationSeconds = d.TurnDurationSeconds
	}
	if c.BotAutoFillDelaySeconds < 0 {
		c.BotAutoFillDelaySeconds = d.BotAutoFillDelaySeconds
	}
	if c.BotMinDelaySeconds < 0 {
		c.BotMinDelaySeconds = d.BotMinDelaySeconds
	}
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		c.BotMaxDelaySeconds = c.BotMinDelaySeconds
	}
	switch c.DefaultBotLevel {
	case BotLevelEasy, BotLevelMedium, BotLevelHard:
	default:
		c.DefaultBotLevel = d.DefaultBotLevel
	}
	if c.Advisor.Issuer == "" {
		c.Advisor.Issuer = d.Advisor.Issuer
	}
	if c.Advisor.TimeoutMs <= 0 {
		c.Advisor.TimeoutMs = d.Advisor.TimeoutMs
	}
	if c.Advisor.TimeoutMs > MaxAdvisorTimeoutMs {
		c.Advisor.TimeoutMs = MaxAdvisorTimeoutMs
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Defaults()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		c.normalize()
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or defaults when
// nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

// WithEnv applies Nakama runtime environment overrides to a copy of the config.
func (c GameConfig) WithEnv(env map[string]string) GameConfig {
	intVar := func(key string, dst *int) {
		if v, ok := env[key]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	intVar("mendikot_turn_duration_seconds", &c.TurnDurationSeconds)
	intVar("mendikot_bot_auto_fill_delay_seconds", &c.BotAutoFillDelaySeconds)
	intVar("mendikot_bot_min_delay_seconds", &c.BotMinDelaySeconds)
	intVar("mendikot_bot_max_delay_seconds", &c.BotMaxDelaySeconds)
	intVar("mendikot_advisor_timeout_ms", &c.Advisor.TimeoutMs)
	if v, ok := env["mendikot_bot_level"]; ok {
		c.DefaultBotLevel = v
	}
	if v, ok := env["mendikot_advisor_url"]; ok {
		c.Advisor.URL = v
	}
	c.normalize()
	return c
}
