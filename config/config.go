package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     string `mapstructure:"server" yaml:"server"`           // e.g., https://yoursite.atlassian.net
	Email      string `mapstructure:"email" yaml:"email"`             // Jira account email
	APIToken   string `mapstructure:"api_token" yaml:"api_token"`     // Jira API token
	ProjectKey string `mapstructure:"project_key" yaml:"project_key"` // Board project key, e.g., AICP

	// Areas lists the canonical work-stream labels. The order is
	// significant: it fixes the label query order, which decides which
	// duplicate survives deduplication.
	Areas []string `mapstructure:"areas" yaml:"areas"`

	// PriorityOrder maps priority names to their ordinal rank, highest first.
	PriorityOrder map[string]int `mapstructure:"priority_order" yaml:"priority_order"`

	StartDateField   string `mapstructure:"start_date_field" yaml:"start_date_field"`     // custom field holding the planned start date
	StoryPointsField string `mapstructure:"story_points_field" yaml:"story_points_field"` // custom field holding story points

	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`

	HTTP HTTPConfig `mapstructure:"http" yaml:"http"`
	Jira JiraConfig `mapstructure:"jira" yaml:"jira"`
}

// HTTPConfig controls the API server
type HTTPConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

// JiraConfig controls the Jira REST collaborator
type JiraConfig struct {
	TimeoutSeconds    int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries        int `mapstructure:"max_retries" yaml:"max_retries"`
	LabelMaxResults   int `mapstructure:"label_max_results" yaml:"label_max_results"`
	ProjectMaxResults int `mapstructure:"project_max_results" yaml:"project_max_results"`
}

// Default returns the configuration defaults
func Default() *Config {
	return &Config{
		Areas: []string{
			"Desenvolvimento",
			"Arquitetura",
			"Dados",
			"Qualidade",
			"DevOps",
		},
		PriorityOrder: map[string]int{
			"Highest": 5,
			"High":    4,
			"Medium":  3,
			"Low":     2,
			"Lowest":  1,
		},
		StartDateField:   "customfield_11317",
		StoryPointsField: "customfield_10016",
		CacheTTLMinutes:  5,
		HTTP:             HTTPConfig{Port: "8080"},
		Jira: JiraConfig{
			TimeoutSeconds:    30,
			MaxRetries:        2,
			LabelMaxResults:   500,
			ProjectMaxResults: 1000,
		},
	}
}

// Load reads configuration from aicockpit.yaml and AICOCKPIT_* environment
// variables, falling back to defaults. A local .env file is loaded first so
// credentials can be kept out of the config file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("aicockpit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.aicockpit")

	v.SetEnvPrefix("AICOCKPIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; env variables and defaults cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	// Keys must be registered for AutomaticEnv values to survive Unmarshal.
	v.SetDefault("server", "")
	v.SetDefault("email", "")
	v.SetDefault("api_token", "")
	v.SetDefault("project_key", "")
	v.SetDefault("areas", def.Areas)
	v.SetDefault("priority_order", def.PriorityOrder)
	v.SetDefault("start_date_field", def.StartDateField)
	v.SetDefault("story_points_field", def.StoryPointsField)
	v.SetDefault("cache_ttl_minutes", def.CacheTTLMinutes)
	v.SetDefault("http.port", def.HTTP.Port)
	v.SetDefault("jira.timeout_seconds", def.Jira.TimeoutSeconds)
	v.SetDefault("jira.max_retries", def.Jira.MaxRetries)
	v.SetDefault("jira.label_max_results", def.Jira.LabelMaxResults)
	v.SetDefault("jira.project_max_results", def.Jira.ProjectMaxResults)
}

// CreateSample writes a sample configuration file to edit and rename.
func CreateSample(filename string) error {
	sample := Default()
	sample.Server = "https://your-company.atlassian.net"
	sample.Email = "your.email@company.com"
	sample.APIToken = "your-jira-api-token"
	sample.ProjectKey = "PROJ"

	data, err := yaml.Marshal(sample)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Validate checks that the fields required to reach Jira are present.
func (c *Config) Validate() error {
	var missing []string
	if c.Server == "" {
		missing = append(missing, "server")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.APIToken == "" {
		missing = append(missing, "api_token")
	}
	if c.ProjectKey == "" {
		missing = append(missing, "project_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if len(c.Areas) == 0 {
		return fmt.Errorf("at least one area must be configured")
	}
	return nil
}
