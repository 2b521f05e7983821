package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/listing"
	"github.com/BryanGrisales/PURR-Fect/internal/logger"
	"github.com/BryanGrisales/PURR-Fect/internal/session"
	"github.com/BryanGrisales/PURR-Fect/internal/store"
)

const (
	app = "purrfect-match"
)

type Config struct {
	Database  string           `mapstructure:"database"`
	UserAgent string           `mapstructure:"user-agent"`
	Petfinder *PetfinderConfig `mapstructure:"petfinder"`
	CatAPI    *CatAPIConfig    `mapstructure:"catapi"`
	Matching  *MatchingConfig  `mapstructure:"matching"`
	Traits    *TraitsConfig    `mapstructure:"traits"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type PetfinderConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	Secret     string `mapstructure:"secret" json:"-"`
	SecretFile string `mapstructure:"secret-file"`
	BaseURL    string `mapstructure:"base-url"`
	Limit      int    `mapstructure:"limit"`
}

type CatAPIConfig struct {
	APIKey  string `mapstructure:"api-key" json:"-"`
	BaseURL string `mapstructure:"base-url"`
}

type MatchingConfig struct {
	Top      int `mapstructure:"top"`
	MinScore int `mapstructure:"min-score"`
}

type TraitsConfig struct {
	// KeywordsFile replaces the built-in keyword table when set.
	KeywordsFile string `mapstructure:"keywords-file"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "purrfect-match matches you with adoptable cats near you",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

var envBindings = map[string]string{
	"petfinder.api-key":      "PETFINDER_API_KEY",
	"petfinder.secret":       "PETFINDER_SECRET",
	"catapi.api-key":         "CAT_API_KEY",
	"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	"database":               "PURRFECT_DB",
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("database", store.DefaultPath)
	viper.SetDefault("petfinder.limit", listing.DefaultLimit)
	viper.SetDefault("matching.top", session.DefaultTop)
	viper.SetDefault("matching.min-score", 0)
	viper.SetDefault("ai.enabled", false)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is purrfect-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("database", "", "path to the sqlite database (default is "+store.DefaultPath+")")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file or to stdout (default is stderr)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// The default config file is optional, an explicit one is not.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	log.Fatal(err)
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-file"),
	})
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Petfinder == nil {
		config.Petfinder = &PetfinderConfig{Limit: listing.DefaultLimit}
	}
	if config.CatAPI == nil {
		config.CatAPI = &CatAPIConfig{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{Top: session.DefaultTop}
	}
	if config.Traits == nil {
		config.Traits = &TraitsConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}
