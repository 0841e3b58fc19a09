package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-navigator"
)

type Config struct {
	AI         *AIConfig         `mapstructure:"ai"`
	Generation *GenerationConfig `mapstructure:"generation"`
	Ingest     *IngestConfig     `mapstructure:"ingest"`
	Tika       *TikaConfig       `mapstructure:"tika"`
	Matching   *MatchingConfig   `mapstructure:"matching"`
	Log        *LogConfig        `mapstructure:"log"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	Ollama   *OllamaConfig `mapstructure:"ollama"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	DocumentModel  string `mapstructure:"document-model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

type OllamaConfig struct {
	ServerURL      string `mapstructure:"server-url"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

// GenerationConfig overrides the advice generation parameters. Zero values keep the defaults.
type GenerationConfig struct {
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max-output-tokens"`
	TopP            float64 `mapstructure:"top-p"`
	TopK            int     `mapstructure:"top-k"`
}

type IngestConfig struct {
	Strategies       []string      `mapstructure:"strategies"`
	MinContentLength int           `mapstructure:"min-content-length"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type TikaConfig struct {
	ServerURL string `mapstructure:"server-url"`
}

type MatchingConfig struct {
	SkillThreshold     float64  `mapstructure:"skill-threshold"`
	NormalizeThreshold float64  `mapstructure:"normalize-threshold"`
	Excellent          float64  `mapstructure:"excellent"`
	Good               float64  `mapstructure:"good"`
	VisibleSections    []string `mapstructure:"visible-sections"`
}

type LogConfig struct {
	MaxLength int `mapstructure:"max-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-navigator parses résumés and matches them against job descriptions",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ingest.strategies", []string{"gemini", "tika", "pdf", "text"})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-navigator.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", "json", "output format: json or yaml")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

// initConfig reads the config file. Without --config a missing file is fine:
// every key has a default.
func initConfig(cmd *cobra.Command) error {
	if cmd == versionCmd {
		return nil
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.AI.Ollama == nil {
		config.AI.Ollama = &OllamaConfig{}
	}
	if config.Generation == nil {
		config.Generation = &GenerationConfig{}
	}
	if config.Ingest == nil {
		config.Ingest = &IngestConfig{}
	}
	if config.Tika == nil {
		config.Tika = &TikaConfig{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.Log == nil {
		config.Log = &LogConfig{}
	}

	return config, nil
}
