package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/compat"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/resume"
)

// unavailable replaces a report the AI backend could not produce.
const unavailable = "unavailable"

type matchOutput struct {
	Optimization  any           `json:"optimization"`
	Compatibility compat.Report `json:"compatibility"`
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a structured résumé against a job description",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	addResumeFlags(matchCmd)
}

func addResumeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resume", "r", "", "structured résumé JSON, as printed by the ingest command")
	cmd.Flags().String("job", "", "file with the job description (prompted for when unset)")
	cmd.MarkFlagRequired("resume")
}

func runMatch(cmd *cobra.Command) error {
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

	out := matchOutput{
		Optimization:  unavailable,
		Compatibility: compat.Check(r, config.Matching.VisibleSections),
	}

	p, err := newProvider(ctx, config, logger)
	if err != nil {
		logger.Warn("ai provider is not available", zap.Error(err))
		return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), out)
	}

	report, err := newOptimizer(config, p, logger).Optimize(ctx, r, job)
	switch {
	case errors.Is(err, ai.ErrUnavailable):
		logger.Warn("optimization is unavailable", zap.Error(err))
	case err != nil:
		return err
	default:
		out.Optimization = report
	}

	return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), out)
}

// resumeAndJob loads the inputs shared by match and advise.
func resumeAndJob(cmd *cobra.Command) (*resume.Resume, string, error) {
	resumePath, _ := cmd.Flags().GetString("resume")
	r, err := loadResume(resumePath)
	if err != nil {
		return nil, "", err
	}

	jobPath, _ := cmd.Flags().GetString("job")
	job, err := readJob(jobPath, cmd.InOrStdin())
	if err != nil {
		return nil, "", err
	}

	return r, job, nil
}

// loadResume accepts a bare résumé or a whole ingest result.
func loadResume(path string) (*resume.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}

	var wrapped struct {
		Resume *resume.Resume `json:"resume"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	if wrapped.Resume != nil {
		wrapped.Resume.Normalize()
		return wrapped.Resume, nil
	}

	r := resume.New()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	r.Normalize()
	return r, nil
}

// readJob reads the job description from path, from piped stdin, or from an
// interactive prompt, in that order.
func readJob(path string, stdin io.Reader) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		prompt := promptui.Prompt{
			Label: "Job description",
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("job description is required")
				}
				return nil
			},
		}
		job, err := prompt.Run()
		if err != nil {
			return "", fmt.Errorf("prompt job description: %w", err)
		}
		return strings.TrimSpace(job), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	job := strings.TrimSpace(string(data))
	if job == "" {
		return "", errors.New("job description is required (use --job or pipe it on stdin)")
	}
	return job, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
