package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coderite/auditor/internal/connection"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend health and the active connection",
	Long: `Check whether the backend is reachable and which LLM connection is
currently active. Exits non-zero when the backend cannot be reached.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runStatus()
	},
}

func runStatus() error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	tty := stdoutIsTTY()
	ctx := context.Background()

	fmt.Printf("%s %s\n", maybeDim(tty, "Backend:"), cfg.BaseURL)

	if err := client.Health(ctx); err != nil {
		fmt.Printf("%s %s\n", maybeDim(tty, "Status: "), maybeFgBold(tty, colorRed, "unreachable"))
		return fmt.Errorf("backend health check failed: %w", err)
	}
	fmt.Printf("%s %s\n", maybeDim(tty, "Status: "), maybeFgBold(tty, colorGreen, "ok"))

	mgr := connection.NewManager(client)
	if err := mgr.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to list connections: %w", err)
	}

	active := mgr.Active()
	if active == nil {
		fmt.Printf("%s %s\n", maybeDim(tty, "Active: "), "(none)")
		fmt.Println()
		fmt.Println(maybeDim(tty, "Add a connection with: auditor connections add"))
		return nil
	}

	fmt.Printf("%s %s\n", maybeDim(tty, "Active: "),
		fmt.Sprintf("%s (%s / %s)", maybeBold(tty, active.Name), providerLabel(active.Provider), active.ModelName))

	return nil
}
