package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/ai"
	"github.com/BryanGrisales/PURR-Fect/internal/ai/gemini"
	"github.com/BryanGrisales/PURR-Fect/internal/catapi"
	"github.com/BryanGrisales/PURR-Fect/internal/listing"
	"github.com/BryanGrisales/PURR-Fect/internal/logger"
	"github.com/BryanGrisales/PURR-Fect/internal/petfinder"
	"github.com/BryanGrisales/PURR-Fect/internal/secrets"
	"github.com/BryanGrisales/PURR-Fect/internal/session"
	"github.com/BryanGrisales/PURR-Fect/internal/store"
	"github.com/BryanGrisales/PURR-Fect/internal/traits"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the compatibility quiz and find matching cats",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("top", "n", 0, "number of matches to show and save (default 5)")
	runCmd.Flags().Int("min-score", 0, "hide matches scoring below this value")
	runCmd.Flags().Bool("dump", false, "write the top matches to a temp json file")

	viper.BindPFlag("matching.top", runCmd.Flags().Lookup("top"))
	viper.BindPFlag("matching.min-score", runCmd.Flags().Lookup("min-score"))
}

// run is the main command for the cli. A failed session is reported and the
// process still exits cleanly.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	baseLogger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer baseLogger.Sync()

	out := cmd.OutOrStdout()
	runID := uuid.NewString()
	lg := logger.ForRun(baseLogger, runID, "")

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting the purrfect-match", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	report, err := runSession(ctx, config, lg, out)
	switch {
	case errors.Is(err, session.ErrInterrupted) || ctx.Err() != nil:
		lg.Info("session interrupted", zap.Error(err))
		fmt.Fprintln(out, "\n\nGoodbye!")
		return
	case err != nil:
		lg.Error("session failed", zap.Error(err))
		fmt.Fprintf(out, "\nError: %v\n", err)
	}

	dump, _ := cmd.Flags().GetBool("dump")
	if dump && report != nil && len(report.Matches) > 0 {
		filename, err := report.Matches.DumpToTmpFile()
		if err != nil {
			lg.Warn("dumping matches to file", zap.Error(err))
		} else {
			fmt.Fprintf(out, "\nMatches written to %s\n", filename)
		}
	}

	fmt.Fprintln(out, "\nThanks for using PurrfectMatch!")
}

// runSession wires the collaborators for one run and executes it.
func runSession(ctx context.Context, config *Config, lg *zap.Logger, out io.Writer) (*session.Report, error) {
	table, err := loadTraits(config.Traits)
	if err != nil {
		return nil, err
	}
	lg.Debug("keyword table loaded", zap.Int("version", table.Version))

	creds, err := petfinderCredentials(config.Petfinder)
	if err != nil {
		return nil, err
	}
	if creds.Configured() {
		fmt.Fprintln(out, "Loading API keys from environment...")
	} else {
		fmt.Fprintln(out, "WARNING: Petfinder API keys not found in environment")
	}

	// One token cache per run so the grant is reused across searches.
	pf := petfinder.New(logger.ForService(lg, "petfinder"), creds, &petfinder.TokenCache{})
	if config.Petfinder.BaseURL != "" {
		pf.APIURL = strings.TrimRight(config.Petfinder.BaseURL, "/")
	}
	if config.UserAgent != "" {
		pf.UserAgent = config.UserAgent
	}

	catKey, err := secrets.LoadOptional(secrets.Source{Name: "thecatapi key", Value: config.CatAPI.APIKey})
	if err != nil {
		return nil, err
	}
	breeds := catapi.New(logger.ForService(lg, "thecatapi"), catKey)
	if config.CatAPI.BaseURL != "" {
		breeds.APIURL = strings.TrimRight(config.CatAPI.BaseURL, "/")
	}

	db, err := store.OpenSQLite(config.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", config.Database, err)
	}
	defer db.Close()

	controller := session.New(
		session.Config{
			Limit:    config.Petfinder.Limit,
			Top:      config.Matching.Top,
			MinScore: config.Matching.MinScore,
		},
		session.Deps{
			Quiz:     newQuiz(out, lg),
			Listings: listing.NewSource(pf, table, logger.ForService(lg, "listing")),
			Breeds:   breeds,
			Store:    db,
			Advisor:  newAdvisor(ctx, config.AI, lg),
			Logger:   lg,
			Out:      out,
		},
	)

	return controller.Run(ctx)
}

func loadTraits(cfg *TraitsConfig) (*traits.Table, error) {
	if cfg == nil || cfg.KeywordsFile == "" {
		return traits.Default(), nil
	}
	table, err := traits.Load(cfg.KeywordsFile)
	if err != nil {
		return nil, fmt.Errorf("loading keyword table: %w", err)
	}
	return table, nil
}

func petfinderCredentials(cfg *PetfinderConfig) (petfinder.Credentials, error) {
	key, err := secrets.LoadOptional(secrets.Source{Name: "petfinder api key", Value: cfg.APIKey})
	if err != nil {
		return petfinder.Credentials{}, err
	}
	secret, err := secrets.LoadOptional(secrets.Source{Name: "petfinder secret", Value: cfg.Secret, File: cfg.SecretFile})
	if err != nil {
		return petfinder.Credentials{}, err
	}
	return petfinder.Credentials{APIKey: key, Secret: secret}, nil
}

// newAdvisor returns nil when the advisor is disabled or cannot be created.
func newAdvisor(ctx context.Context, cfg *AIConfig, lg *zap.Logger) ai.Advisor {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	aiLogger := logger.ForService(lg, "gemini")
	apiKey, err := secrets.Load(secrets.Source{Name: "gemini api key", File: cfg.Gemini.APIKeyFile})
	if err != nil {
		aiLogger.Warn("advisor disabled", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or ai.gemini.api-key-file"))
		return nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		aiLogger.Warn("advisor disabled", zap.Error(err))
		return nil
	}
	aiLogger.Info("advisor enabled", zap.String("model", generator.Model()))

	return gemini.NewAdvisor(generator, aiLogger, cfg.Gemini.MaxLogLength)
}
