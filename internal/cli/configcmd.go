package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coderite/auditor/internal/config"
	"github.com/coderite/auditor/internal/dirs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage auditor configuration",
	Long:  `View and manage auditor configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with source annotations",
	Long: `Show the fully resolved configuration with annotations indicating
where each value came from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/auditor/config.yaml)
  3. Environment variables (AUDITOR_*)
  4. Local config (.auditor/config.yaml)
  5. CLI flags (highest precedence)`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default global config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("# Auditor Configuration")
	fmt.Println()
	fmt.Println("## Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Printf("  - %s\n", src)
	}
	fmt.Println()

	fmt.Println("## Directories")
	fmt.Printf("  Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		fmt.Printf("  Local config:  %s\n", cfg.LocalDir())
	} else {
		fmt.Printf("  Local config:  (none detected)\n")
	}
	fmt.Println()

	fmt.Println("## Backend Settings")
	fmt.Printf("  base_url:        %s\n", cfg.BaseURL)
	fmt.Printf("  timeout:         %ds\n", cfg.Timeout)
	fmt.Printf("  analyze_timeout: %ds\n", cfg.AnalyzeTimeout)
	fmt.Println()

	fmt.Println("## Audit Settings")
	if cfg.DefaultCategory != "" {
		fmt.Printf("  default_category: %s\n", cfg.DefaultCategory)
	} else {
		fmt.Printf("  default_category: (none)\n")
	}

	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	dir := dirs.ConfigDir()
	if err := config.InstallDefaults(dir); err != nil {
		return fmt.Errorf("failed to install default config: %w", err)
	}
	fmt.Printf("Wrote %s\n", filepath.Join(dir, "config.yaml"))
	return nil
}
