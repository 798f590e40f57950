package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spacesedan/moodlens/config"
	"github.com/spacesedan/moodlens/internal/logging"
	"github.com/spacesedan/moodlens/internal/processing"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		policyPath string
		backend    string
		logLevel   string
	)

	loadSettings := func() config.Settings {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		config.LoadEnv(env)
		settings := config.GetSettings()
		if policyPath != "" {
			settings.ScoringPolicyPath = policyPath
		}
		if backend != "" {
			settings.ClassifierBackend = strings.ToLower(backend)
		}
		return settings
	}

	rootCmd := &cobra.Command{
		Use:          "moodctl",
		Short:        "Score mood and stress in free-form text",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.NewLogger(os.Stderr, logLevel))
		},
	}
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "scoring policy YAML (defaults to SCORING_POLICY_PATH or the built-in policy)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "emotion classifier backend: hugot, huggingface, openai or none")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze text given as arguments or on stdin and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			rt, err := processing.NewRuntime(loadSettings())
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.Analyzer.Analyze(cmd.Context(), text)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective scoring policy as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := processing.LoadPolicy(loadSettings().ScoringPolicyPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(policy)
		},
	}

	rootCmd.AddCommand(analyzeCmd, policyCmd)
	return rootCmd
}
