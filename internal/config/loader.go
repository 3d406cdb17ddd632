package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envConfigDefaultPath = "RELAY_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

// Load builds configuration from defaults, optional config file, env vars, and returns the resolved path.
// Precedence: defaults < config file < env vars < caller overrides.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("read_header_timeout", cfg.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("moderation.cooldown", cfg.Moderation.Cooldown)
	v.SetDefault("moderation.antiflood_window", cfg.Moderation.AntifloodWindow)
	v.SetDefault("moderation.antiflood_mute", cfg.Moderation.AntifloodMute)
	v.SetDefault("moderation.max_message_length", cfg.Moderation.MaxMessageLength)
	v.SetDefault("moderation.caps_policy", cfg.Moderation.CapsPolicy)
	v.SetDefault("moderation.caps_threshold", cfg.Moderation.CapsThreshold)
	v.SetDefault("moderation.caps_min_letters", cfg.Moderation.CapsMinLetters)
	v.SetDefault("moderation.caps_warn_limit", cfg.Moderation.CapsWarnLimit)
	v.SetDefault("moderation.warn_mute", cfg.Moderation.WarnMute)
	v.SetDefault("moderation.admins", cfg.Moderation.Admins)
	v.SetDefault("moderation.banned_phrases", cfg.Moderation.BannedPhrases)
	v.SetDefault("audit.backend", cfg.Audit.Backend)
	v.SetDefault("audit.path", cfg.Audit.Path)

	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := resolveConfigPath(explicitPath)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			if writeErr := writeDefaultConfig(configPath, cfg); writeErr != nil && logger != nil {
				logger.Warn().Err(writeErr).Str("path", configPath).Msg("failed to write default config")
			} else if logger != nil {
				logger.Info().Str("path", configPath).Msg("created default config")
			}
			// try reading again in case it was just written
			if readErr := v.ReadInConfig(); readErr != nil && logger != nil {
				logger.Warn().Err(readErr).Str("path", configPath).Msg("failed to read config after writing default")
			}
		} else {
			return cfg, configPath, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configPath, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return cfg, configPath, err
	}

	return cfg, configPath, nil
}

func validate(cfg Config) error {
	switch cfg.Moderation.CapsPolicy {
	case "warn", "normalize":
	default:
		return fmt.Errorf("moderation.caps_policy must be \"warn\" or \"normalize\", got %q", cfg.Moderation.CapsPolicy)
	}
	if cfg.Moderation.CapsThreshold < 0 || cfg.Moderation.CapsThreshold > 1 {
		return fmt.Errorf("moderation.caps_threshold must be in [0,1], got %v", cfg.Moderation.CapsThreshold)
	}
	switch cfg.Audit.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("audit.backend must be \"file\" or \"sqlite\", got %q", cfg.Audit.Backend)
	}
	return nil
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
