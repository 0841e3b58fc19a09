package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/advice"
	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/compat"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/resume"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Generate improvement advice for a structured résumé",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAdvise(cmd)
	},
}

func init() {
	rootCmd.AddCommand(adviseCmd)

	addResumeFlags(adviseCmd)
}

func runAdvise(cmd *cobra.Command) error {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	r, job, err := resumeAndJob(cmd)
	if err != nil {
		return err
	}

	missing, err := newGapAnalyzer(config).Analyze(r.Text(), job)
	if err != nil {
		return fmt.Errorf("analyzing missing keywords: %w", err)
	}

	issues := compat.Check(r, config.Matching.VisibleSections).Issues

	var out any = unavailable
	p, err := newProvider(ctx, config, logger)
	if err != nil {
		logger.Warn("ai provider is not available", zap.Error(err))
		return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), out)
	}

	out, err = adviseOrUnavailable(ctx, newAdvisor(config, p, logger), r, issues, missing, logger)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), out)
}

type advisor interface {
	Advise(ctx context.Context, r *resume.Resume, issues, missing []string) (*advice.Record, error)
}

// adviseOrUnavailable returns the advice record, or "unavailable" when the
// generator could not answer.
func adviseOrUnavailable(ctx context.Context, a advisor, r *resume.Resume, issues, missing []string, logger *zap.Logger) (any, error) {
	record, err := a.Advise(ctx, r, issues, missing)
	switch {
	case errors.Is(err, ai.ErrUnavailable):
		logger.Warn("advice is unavailable", zap.Error(err))
		return unavailable, nil
	case err != nil:
		return nil, err
	default:
		return record, nil
	}
}
