// ABOUTME: Config command for viewing and editing lift settings.
// ABOUTME: Settings persist as JSON under the XDG config directory.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/lift/internal/config"
	"github.com/harperreed/lift/internal/resolver"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Println("Configuration")
		faint.Printf("  file: %s\n\n", config.GetConfigPath())

		fmt.Printf("  data_dir            %s\n", cfg.GetDataDir())
		fmt.Printf("  assistant.model     %s\n", cfg.GetModel())
		if cfg.Assistant.APIKey != "" {
			fmt.Println("  assistant.api_key   (set)")
		} else {
			faint.Println("  assistant.api_key   (unset; using ANTHROPIC_API_KEY)")
		}
		policy := cfg.ResolverPolicy()
		if policy.MinScore == 0 && policy.Margin == 0 {
			policy = resolver.DefaultPolicy
		}
		fmt.Printf("  resolver.min_score  %.2f\n", policy.MinScore)
		fmt.Printf("  resolver.margin     %.2f\n", policy.Margin)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Keys:
  data_dir            Data directory (supports ~)
  assistant.model     Anthropic model name
  assistant.api_key   API key (ANTHROPIC_API_KEY takes precedence)
  resolver.min_score  Minimum fuzzy-match score (0..1)
  resolver.margin     Required lead over the runner-up (0..1)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "data_dir":
			cfg.DataDir = value
		case "assistant.model":
			cfg.Assistant.Model = value
		case "assistant.api_key":
			cfg.Assistant.APIKey = value
		case "resolver.min_score", "resolver.margin":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("invalid value for %s: %q (want 0..1)", key, value)
			}
			if key == "resolver.min_score" {
				cfg.Resolver.MinScore = f
			} else {
				cfg.Resolver.Margin = f
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
