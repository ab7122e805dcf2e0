package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	Wiki    WikiConfig   `mapstructure:"wiki"`
	Speech  SpeechConfig `mapstructure:"speech"`
}

type WikiConfig struct {
	Language string `mapstructure:"language"`
}

type SpeechConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	Voice    string `mapstructure:"voice"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
}

func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".tarih")

	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("wiki.language", "tr")
	viper.SetDefault("speech.provider", "gemini")
	viper.SetDefault("speech.model", "gemini-2.5-flash-preview-tts")
	viper.SetDefault("speech.voice", "Kore")

	// Environment variable overrides
	viper.SetEnvPrefix("TARIH")
	viper.AutomaticEnv()
	viper.BindEnv("data_dir", "TARIH_DATA_DIR")
	viper.BindEnv("speech.provider", "TARIH_SPEECH_PROVIDER")
	viper.BindEnv("speech.model", "TARIH_SPEECH_MODEL")
	viper.BindEnv("speech.voice", "TARIH_SPEECH_VOICE")
	viper.BindEnv("speech.api_key", "GEMINI_API_KEY")

	// Config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultDataDir)

	// Read config file if exists (ignore error if not found)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Speech.Provider == "openai" && cfg.Speech.APIKey == "" {
		cfg.Speech.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "tarih.db")
}
