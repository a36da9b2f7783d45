package main

import (
	"fmt"
	"time"

	"github.com/jpalmerr/tickface/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without opening a window.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a TickFace configuration file without opening a window.

This command parses the YAML, applies defaults, and validates all
fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  tickface validate -c config.yaml
  tickface validate --config /etc/tickface/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Build exercises the option validation the SDK would apply
	if _, err := config.Build(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	maxRefresh := cfg.MaxRefresh.Duration()
	if maxRefresh == 0 {
		maxRefresh = 32 * time.Millisecond // SDK default
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Label:       %s\n", cfg.Label)
	fmt.Printf("  Timezone:    %s\n", timezoneOrLocal(cfg.Timezone))
	fmt.Printf("  Rate:        %gx\n", cfg.Rate)
	fmt.Printf("  Max refresh: %s\n", maxRefresh)
	fmt.Printf("  Window:      %dx%d\n", cfg.Window.Width, cfg.Window.Height)
	if cfg.StateFile != "" {
		fmt.Printf("  State file:  %s\n", cfg.StateFile)
	}
	return nil
}

func timezoneOrLocal(tz string) string {
	if tz == "" {
		return "local"
	}
	return tz
}
