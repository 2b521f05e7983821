package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/logger"
	"github.com/BryanGrisales/PURR-Fect/internal/matching"
	"github.com/BryanGrisales/PURR-Fect/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the saved profile and matches of a previous session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lg, err := newLogger()
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
		defer lg.Sync()

		config, err := getConfig()
		if err != nil {
			return fmt.Errorf("getting a config: %w", err)
		}

		db, err := store.OpenSQLite(config.Database)
		if err != nil {
			return fmt.Errorf("opening database %q: %w", config.Database, err)
		}
		defer db.Close()

		sessionID := strings.TrimSpace(args[0])
		lg.Debug("loading history", zap.String(logger.FieldSessionID, sessionID))

		return showHistory(cmd.Context(), db, sessionID, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

type historyReader interface {
	GetUser(ctx context.Context, sessionID string) (*matching.UserProfile, error)
	ListMatches(ctx context.Context, sessionID string) ([]store.MatchRecord, error)
}

func showHistory(ctx context.Context, db historyReader, sessionID string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	user, err := db.GetUser(ctx, sessionID)
	if errors.Is(err, store.ErrUserNotFound) {
		fmt.Fprintf(out, "No saved profile for session %s.\n", sessionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	records, err := db.ListMatches(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading matches: %w", err)
	}

	allergies := "no"
	if user.Allergies {
		allergies = "yes"
	}
	desired := "none"
	if len(user.DesiredTraits) > 0 {
		desired = strings.Join(user.DesiredTraits, ", ")
	}

	fmt.Fprintf(out, "Session %s\n", user.SessionID)
	fmt.Fprintf(out, "   Home: %s | Away: %dh/day | Activity: %d/10\n", user.HomeType.Label(), user.HoursAway, user.ActivityLevel)
	fmt.Fprintf(out, "   Experience: %s | Allergies: %s\n", user.Experience.Label(), allergies)
	fmt.Fprintf(out, "   Desired traits: %s | Location: %s\n", desired, user.Location)

	if len(records) == 0 {
		fmt.Fprintln(out, "\nNo matches were saved for this session.")
		return nil
	}

	fmt.Fprintln(out, "\nSAVED MATCHES")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	for i, r := range records {
		score := matching.Score{Total: r.Total}
		fmt.Fprintf(out, "%d. %s (%s) - %d%% Compatible (%s)\n", i+1, r.CatName, r.CatID, r.Total, score.Rating())
		fmt.Fprintf(out, "   Lifestyle: %d/40 | Experience: %d/30 | Personality: %d/30\n", r.Lifestyle, r.Experience, r.Personality)
	}

	return nil
}
