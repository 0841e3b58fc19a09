package cmd

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ingest"
	"github.com/spigell/career-navigator/internal/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Parse a résumé document into a structured record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("media-type", "", "media type of the document (detected from the extension or content when unset)")
}

func runIngest(cmd *cobra.Command, path string) error {
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

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	mediaType, _ := cmd.Flags().GetString("media-type")
	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(path))
	}

	p, providerErr := newProvider(ctx, config, logger)
	if providerErr != nil {
		logger.Warn("ai provider is not available", zap.Error(providerErr))
	}

	orchestrator, err := newOrchestrator(config, p, providerErr, logger)
	if err != nil {
		return err
	}

	result := orchestrator.Ingest(ctx, ingest.Document{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Data:      data,
	})

	return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), result)
}
