package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/marquee"
	"github.com/agentstation/marquee/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Catalog
	APIKey     string
	BaseURL    string
	SearchTerm string
	SearchYear int

	// Store
	Store marquee.StoreConfig

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.marquee.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), "")
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile == "" {
		configFile = os.Getenv("MARQUEE_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".marquee")
	}

	// a missing config file is fine
	_ = v.ReadInConfig()

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		APIKey:     v.GetString("omdb_api_key"),
		BaseURL:    v.GetString("omdb_base_url"),
		SearchTerm: v.GetString("catalog.term"),
		SearchYear: v.GetInt("catalog.year"),

		Store: marquee.StoreConfig{
			Driver:        v.GetString("store.driver"),
			Path:          v.GetString("store.path"),
			RedisAddr:     v.GetString("redis.addr"),
			RedisPassword: v.GetString("redis.password"),
			RedisDB:       v.GetInt("redis.db"),
			RedisPrefix:   v.GetString("redis.prefix"),
		},

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("omdb_base_url", constants.DefaultBaseURL)
	v.SetDefault("catalog.term", constants.DefaultSearchTerm)
	v.SetDefault("catalog.year", constants.DefaultSearchYear)
	v.SetDefault("store.driver", marquee.DriverFiles)
	v.SetDefault("store.path", constants.DefaultDataPath)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags applies parsed flag values. Flags take precedence over
// the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = verbose || c.Verbose
	c.Quiet = quiet || c.Quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set in the environment win.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
