package config

import (
	"vanguard/core"

	configUtil "github.com/fox-one/pkg/config"
)

const (
	defaultEndPoint      = "http://localhost:5000"
	defaultPerPage       = 12
	defaultLimit         = 200
	defaultCacheSize     = 64
	defaultCounterpartID = 1
)

// Load load config file, env VANGUARD_* overrides the file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("VANGUARD")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaults(config)
	return Validate(config)
}

func defaults(cfg *core.Config) {
	if cfg.API.EndPoint == "" {
		cfg.API.EndPoint = defaultEndPoint
	}

	if cfg.View.PerPage == 0 {
		cfg.View.PerPage = defaultPerPage
	}

	if cfg.View.Limit == 0 {
		cfg.View.Limit = defaultLimit
	}

	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = defaultCacheSize
	}

	if cfg.Chat.CounterpartID == 0 {
		cfg.Chat.CounterpartID = defaultCounterpartID
	}
}

// Validate reject values the listing pipeline can not work with
func Validate(cfg *core.Config) error {
	if cfg.View.PerPage <= 0 {
		return &core.Error{Code: core.ErrInvalidConfig, Op: "config", Msg: "view.per_page must be positive"}
	}

	if cfg.View.Limit <= 0 {
		return &core.Error{Code: core.ErrInvalidConfig, Op: "config", Msg: "view.limit must be positive"}
	}

	if cfg.Cache.Size < 0 {
		return &core.Error{Code: core.ErrInvalidConfig, Op: "config", Msg: "cache.size must not be negative"}
	}

	return nil
}
