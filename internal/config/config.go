package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/krobus00/roostoo-tester/internal/constant"
	"github.com/spf13/viper"
)

var (
	ServiceName    = "roostoo-tester"
	ServiceVersion = "dev"
)

var (
	Env *EnvConfig
)

const (
	EnvAPIKey    = "ROOSTOO_API_KEY"
	EnvAPISecret = "ROOSTOO_API_SECRET"
	EnvBaseURL   = "BASE_URL"
)

type EnvConfig struct {
	Env      string         `mapstructure:"env"`
	Log      LogConfig      `mapstructure:"log"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
}

type LogConfig struct {
	ShowCaller bool   `mapstructure:"show_caller"`
	LogLevel   string `mapstructure:"log_level"`
	File       string `mapstructure:"file"`
}

type ExchangeConfig struct {
	Name      string        `mapstructure:"name"`
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	DebugSign bool          `mapstructure:"debug_sign"`
}

// MissingVariables lists the environment variable names whose values are not set.
func (c ExchangeConfig) MissingVariables() []string {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, EnvAPIKey)
	}
	if strings.TrimSpace(c.APISecret) == "" {
		missing = append(missing, EnvAPISecret)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		missing = append(missing, EnvBaseURL)
	}

	return missing
}

// LoadConfig reads the optional yml config file and dotenv file, then overlays
// the process environment. A missing default config.yml or .env is not an error.
func LoadConfig(configPath, dotEnvPath string) error {
	viper.Reset()

	if err := loadDotEnv(dotEnvPath); err != nil {
		return err
	}

	viper.SetDefault("env", constant.DevelopmentEnvironment)
	viper.SetDefault("log.log_level", "info")
	viper.SetDefault("log.show_caller", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("exchange.name", "roostoo")
	viper.SetDefault("exchange.timeout", 15*time.Second)
	viper.SetDefault("exchange.debug_sign", false)

	configPath = strings.TrimSpace(configPath)
	explicit := configPath != ""
	if !explicit {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	} else {
		ext := strings.ToLower(filepath.Ext(configPath))
		if ext == ".yml" || ext == ".yaml" {
			viper.SetConfigFile(configPath)
		} else {
			viper.SetConfigName(filepath.Base(configPath))
			viper.SetConfigType("yml")
			configDir := filepath.Dir(configPath)
			if configDir == "." || configDir == "" {
				viper.AddConfigPath(".")
			} else {
				viper.AddConfigPath(configDir)
			}
		}
	}

	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	_ = viper.BindEnv("exchange.api_key", EnvAPIKey)
	_ = viper.BindEnv("exchange.api_secret", EnvAPISecret)
	_ = viper.BindEnv("exchange.base_url", EnvBaseURL)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err = viper.Unmarshal(&Env)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	Env.Exchange.APIKey = strings.TrimSpace(Env.Exchange.APIKey)
	Env.Exchange.APISecret = strings.TrimSpace(Env.Exchange.APISecret)
	Env.Exchange.BaseURL = strings.TrimRight(strings.TrimSpace(Env.Exchange.BaseURL), "/")

	return nil
}

// loadDotEnv exports the entries of a dotenv file into the process
// environment. Variables already set in the environment win.
func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read dotenv file: %w", err)
	}

	for _, key := range v.AllKeys() {
		envKey := strings.ToUpper(key)
		if _, ok := os.LookupEnv(envKey); ok {
			continue
		}
		if err := os.Setenv(envKey, v.GetString(key)); err != nil {
			return fmt.Errorf("failed to export %s: %w", envKey, err)
		}
	}

	return nil
}
