package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/tnebes/sme/shmap"
)

// Config holds the settings read from sme.yaml, the environment (SME_*)
// and the global flags, in increasing order of precedence.
type Config struct {
	// Minimum level of a log required to be written. Options: trace, debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
	// File to which logs are appended besides the console. Blank disables it.
	LogFile string `mapstructure:"log_file"`
	Backup  bool   `mapstructure:"backup"`
	DryRun  bool   `mapstructure:"dry_run"`

	// Per action overrides, keyed by action name (unlock, invasion, siege).
	Rules map[string]RuleConfig `mapstructure:"rules"`
}

type RuleConfig struct {
	Delta *int `mapstructure:"delta"`
	// Hex bytes, quote it in YAML: "01 00".
	Payload string `mapstructure:"payload"`
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "sme.log")
	v.SetDefault("backup", false)
	v.SetDefault("dry_run", false)

	v.SetEnvPrefix("sme")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	/* Nested keys are only seen by Unmarshal once they are bound. */
	for _, a := range shmap.Actions {
		for _, field := range []string{"delta", "payload"} {
			key := "rules." + a.String() + "." + field
			envKey := "SME_" + strings.ToUpper(strings.Replace(key, ".", "_", -1))
			if err := v.BindEnv(key, envKey); err != nil {
				return nil, fmt.Errorf("binding %s: %w", envKey, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	} else {
		v.SetConfigName("sme")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "sme"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &config, nil
}

func (c *Config) applyFlags() {
	if CLI.LogLevel != "" {
		c.LogLevel = CLI.LogLevel
	}
	if CLI.LogFile != "" {
		c.LogFile = CLI.LogFile
	}
	if CLI.NoLogFile {
		c.LogFile = ""
	}
	c.Backup = c.Backup || CLI.Backup
	c.DryRun = c.DryRun || CLI.DryRun
}

// RuleTable returns the built-in rules with the config overrides applied,
// then the action=delta:payload overrides from the command line.
func (c *Config) RuleTable(overrides []string) (shmap.RuleTable, error) {
	rules := shmap.DefaultRules()

	for name, rc := range c.Rules {
		a, err := shmap.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("config rules: %w", err)
		}

		r := rules[a]
		if rc.Delta != nil {
			r.Delta = *rc.Delta
		}
		if rc.Payload != "" {
			if r.Payload, err = shmap.ParsePayload(rc.Payload); err != nil {
				return nil, fmt.Errorf("config rules.%s: %w", name, err)
			}
		}
		rules[a] = r
	}

	for _, o := range overrides {
		a, r, err := parseRuleFlag(o)
		if err != nil {
			return nil, err
		}
		rules[a] = r
	}

	return rules, rules.Validate()
}

func parseRuleFlag(s string) (shmap.ActionKind, shmap.ActionRule, error) {
	var r shmap.ActionRule

	name, rest := splitPair(s, "=")
	delta, payload := splitPair(rest, ":")
	if name == "" || delta == "" || payload == "" {
		return 0, r, fmt.Errorf("%w: %q, want action=delta:payload", shmap.ErrorInvalidRule, s)
	}

	a, err := shmap.ParseAction(name)
	if err != nil {
		return 0, r, err
	}

	d, err := strconv.ParseInt(delta, 0, 32)
	if err != nil {
		return 0, r, fmt.Errorf("%w: delta %q: %v", shmap.ErrorInvalidRule, delta, err)
	}
	r.Delta = int(d)

	if r.Payload, err = shmap.ParsePayload(payload); err != nil {
		return 0, r, err
	}
	return a, r, nil
}

func splitPair(s, sep string) (string, string) {
	i := strings.Index(s, sep)
	if i < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):])
}
