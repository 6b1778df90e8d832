// Package config loads reconciliation job files. A job file names the
// dataset source, the output writer, the dedupe key, and one rule per
// attribute to reconcile. Viper handles the file formats and environment
// overrides (RECTIFY_ prefix).
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/rectify/pkg/errors"
	"github.com/agentstation/rectify/pkg/reconcile"
	"github.com/agentstation/rectify/pkg/sources"
	"github.com/agentstation/rectify/pkg/table"
)

// Config is a reconciliation job definition.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Output OutputConfig `mapstructure:"output"`
	Dedupe []string     `mapstructure:"dedupe"`
	Rules  []RuleConfig `mapstructure:"rules"`
}

// SourceConfig names the dataset to load.
type SourceConfig struct {
	Type  string `mapstructure:"type"`
	Path  string `mapstructure:"path"`
	Query string `mapstructure:"query"`
}

// OutputConfig names where the cleaned table is written.
type OutputConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

// RuleConfig is the serialized form of one reconciliation rule.
type RuleConfig struct {
	Attribute string   `mapstructure:"attribute"`
	Identity  []string `mapstructure:"identity"`
	Period    string   `mapstructure:"period"`
	Order     string   `mapstructure:"order"`
	Strategy  string   `mapstructure:"strategy"`
	Encoding  []string `mapstructure:"encoding"`
}

// Load reads a job file into a Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("source.type", string(sources.TypeCSV))
	v.SetDefault("output.type", string(sources.TypeCSV))
	v.SetEnvPrefix("RECTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError("job file", "cannot read "+path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("job file", "cannot parse "+path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the parts every job needs.
func (c *Config) validate() error {
	if c.Source.Path == "" {
		return &errors.ConfigError{Component: "source", Message: "path is required"}
	}
	if len(c.Rules) == 0 {
		return &errors.ConfigError{Component: "rules", Message: "at least one rule is required"}
	}
	for _, rule := range c.Rules {
		if rule.Attribute == "" {
			return &errors.ConfigError{Component: "rules", Message: "rule attribute is required"}
		}
		if len(rule.Identity) == 0 {
			return &errors.ConfigError{Component: "rules", Message: "rule " + rule.Attribute + " needs identity columns"}
		}
	}
	return nil
}

// NewSource builds the dataset source the job reads from.
func (c *Config) NewSource() (sources.Source, error) {
	return sources.New(sources.Type(c.Source.Type), c.Source.Path, c.Source.Query)
}

// NewWriter builds the writer the job saves to, or nil when no output
// path is configured.
func (c *Config) NewWriter() (sources.Writer, error) {
	if c.Output.Path == "" {
		return nil, nil
	}
	return sources.NewWriter(sources.Type(c.Output.Type), c.Output.Path)
}

// ReconcileRules converts the serialized rules to reconcile.Rule values.
func (c *Config) ReconcileRules() ([]reconcile.Rule, error) {
	rules := make([]reconcile.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		rule := reconcile.Rule{
			Attribute: rc.Attribute,
			Identity:  rc.Identity,
			Period:    rc.Period,
			Order:     rc.Order,
		}
		if rc.Strategy != "" {
			strategy, err := reconcile.ParseStrategy(rc.Strategy)
			if err != nil {
				return nil, err
			}
			rule.Strategy = strategy
		}
		if len(rc.Encoding) > 0 {
			rule.Encoding = table.NewEncoding(rc.Encoding...)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
