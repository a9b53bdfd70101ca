// Package cmd contains the Cobra commands for the data assistant.
package cmd

import (
	"context"
	"fmt"

	"llm_data_assistant/internal/config"
	"llm_data_assistant/internal/core"
	"llm_data_assistant/internal/dataset"
	"llm_data_assistant/internal/nodes"
	"llm_data_assistant/internal/query"
	"llm_data_assistant/internal/session"
	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/llm/analyst"
	"llm_data_assistant/src/llm/planner"
	"llm_data_assistant/src/logger"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "llm_data_assistant",
	Short: "Natural-language data analysis backend",
	Long: `llm_data_assistant turns a prompt into data-analysis actions:
load a CSV or XLSX file, ask questions about it, or request a chart.

Run 'llm_data_assistant serve' to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, promptCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app is everything a command needs once configuration is loaded
type app struct {
	config    *config.Config
	processor *core.Processor
	health    *llm.HealthChecker
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.InitLogger(cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	gw, err := llm.NewGatewayFromConfig(ctx, cfg.Model)
	if err != nil {
		return nil, err
	}
	health, err := llm.NewHealthChecker(cfg.Model.Provider, cfg.Model.BaseURL, 0)
	if err != nil {
		return nil, err
	}

	a := analyst.New(gw)
	proc := core.NewProcessor(planner.New(gw), session.NewStore())
	for _, node := range []core.Node{
		nodes.NewLoadNode(dataset.NewLoader(cfg.Data.Dir), a, cfg.Data.SampleRows),
		nodes.NewQuestionNode(a, query.NewGuard(cfg.Data.BlockedKeywords), cfg.Data.SampleRows),
		nodes.NewChartNode(a),
	} {
		if err := proc.AddNode(node); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("provider", cfg.Model.Provider).
		Str("intent_model", cfg.Model.IntentModel).
		Str("generation_model", cfg.Model.GenerationModel).
		Str("data_dir", cfg.Data.Dir).
		Msg("Data assistant ready")

	return &app{config: cfg, processor: proc, health: health}, nil
}
