package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. EDUGEN_LLM_API_KEY.
const EnvPrefix = "EDUGEN"

var defaults = map[string]any{
	"llm.provider":           "",
	"llm.api_key":            "",
	"llm.model":              "",
	"llm.base_url":           "",
	"llm.timeout":            "60s",
	"llm.max_attempts":       3,
	"generation.temperature": 0.7,
	"generation.max_tokens":  2048,
	"generation.questions":   3,
	"review.temperature":     0.3,
	"review.max_tokens":      1024,
	"loop.max_refinements":   3,
	"log.level":              "warn",
	"log.format":             "text",
	"usage.enabled":          true,
	"usage.db":               "",
}

// flagKeys maps configuration keys onto the flag names that override them.
// Flags missing from the set are skipped.
var flagKeys = map[string]string{
	"llm.provider":         "provider",
	"llm.api_key":          "api-key",
	"llm.model":            "model",
	"llm.base_url":         "base-url",
	"llm.timeout":          "timeout",
	"loop.max_refinements": "max-refinements",
	"log.level":            "log-level",
	"log.format":           "log-format",
	"usage.db":             "usage-db",
}

var validate = validator.New()

// Load reads the configuration. configFile, when set, must exist; otherwise
// edugen.yaml is looked up in the working directory and the user config
// directory and is optional. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("edugen")
		v.AddConfigPath(".")
		if dir := userConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "edugen")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "edugen")
}
