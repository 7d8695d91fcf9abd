package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coderite/auditor/internal/connection"
	"github.com/coderite/auditor/internal/domain"
)

var (
	connName     string
	connProvider string
	connModel    string
	connAPIKey   string
	connForce    bool
)

var connectionsCmd = &cobra.Command{
	Use:     "connections",
	Aliases: []string{"conn"},
	Short:   "Manage LLM connections",
	Long: `Manage the LLM connections the backend uses for document audits.

A connection bundles a provider, a model name and an API key. Exactly one
connection is active at a time; the active one is used for every audit.
New and updated connections are verified against the provider before they
are saved.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runConnectionsList()
	},
}

var connectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured connections",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runConnectionsList()
	},
}

var connectionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a connection (tested before saving)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runConnectionsAdd()
	},
}

var connectionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a connection (tested before saving)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runConnectionsUpdate(args[0])
	},
}

var connectionsTestCmd = &cobra.Command{
	Use:   "test [id]",
	Short: "Test a connection without changing anything",
	Long: `Test a connection against its provider without saving anything.

With an id, tests the stored connection. Without one, tests a draft built
from the --name/--provider/--model/--api-key flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return runConnectionsTest(id)
	},
}

var connectionsActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a connection the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runConnectionsActivate(args[0])
	},
}

var connectionsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runConnectionsRm(args[0])
	},
}

func init() {
	for _, c := range []*cobra.Command{connectionsAddCmd, connectionsUpdateCmd, connectionsTestCmd} {
		c.Flags().StringVar(&connName, "name", "", "display name for the connection")
		c.Flags().StringVar(&connProvider, "provider", "", "LLM provider (openai, gemini, ollama)")
		c.Flags().StringVar(&connModel, "model", "", "model name, e.g. gpt-4o")
		c.Flags().StringVar(&connAPIKey, "api-key", "", "provider API key")
	}
	connectionsRmCmd.Flags().BoolVarP(&connForce, "force", "f", false, "delete without confirmation")

	connectionsCmd.AddCommand(
		connectionsListCmd,
		connectionsAddCmd,
		connectionsUpdateCmd,
		connectionsTestCmd,
		connectionsActivateCmd,
		connectionsRmCmd,
	)
}

func newManager() (*connection.Manager, error) {
	_, client, err := loadClient()
	if err != nil {
		return nil, err
	}
	return connection.NewManager(client), nil
}

func parseConnectionID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid connection id %q", arg)
	}
	return id, nil
}

func draftFromFlags() domain.Connection {
	return domain.Connection{
		Name:      connName,
		Provider:  domain.Provider(connProvider),
		ModelName: connModel,
		APIKey:    connAPIKey,
	}
}

func runConnectionsList() error {
	mgr, err := newManager()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := mgr.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to list connections: %w", err)
	}

	conns := mgr.Connections()
	if len(conns) == 0 {
		fmt.Println("No connections configured.")
		fmt.Println()
		fmt.Println("Add one with: auditor connections add --name ... --provider ... --model ...")
		return nil
	}

	tty := stdoutIsTTY()
	for _, c := range conns {
		marker := " "
		if c.IsActive {
			marker = maybeFgBold(tty, colorGreen, "*")
		}
		fmt.Printf("%s %s %s  %s  %s\n",
			marker,
			maybeDim(tty, fmt.Sprintf("[%d]", c.ID)),
			maybeBold(tty, c.Name),
			fmt.Sprintf("%s/%s", providerLabel(c.Provider), c.ModelName),
			maybeDim(tty, maskKey(c.APIKey)))
	}
	return nil
}

func runConnectionsAdd() error {
	mgr, err := newManager()
	if err != nil {
		return err
	}

	if err := mgr.Create(context.Background(), draftFromFlags()); err != nil {
		return describeConnectionError(err)
	}

	fmt.Println(maybeFgBold(stdoutIsTTY(), colorGreen, "Connection added."))
	return nil
}

func runConnectionsUpdate(arg string) error {
	id, err := parseConnectionID(arg)
	if err != nil {
		return err
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}

	if err := mgr.Update(context.Background(), id, draftFromFlags()); err != nil {
		return describeConnectionError(err)
	}

	fmt.Println(maybeFgBold(stdoutIsTTY(), colorGreen, "Connection updated."))
	return nil
}

func runConnectionsTest(arg string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}

	ctx := context.Background()

	draft := draftFromFlags()
	if arg != "" {
		id, err := parseConnectionID(arg)
		if err != nil {
			return err
		}
		if err := mgr.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to list connections: %w", err)
		}
		found := false
		for _, c := range mgr.Connections() {
			if c.ID == id {
				draft = c.Draft()
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no connection with id %d", id)
		}
	}

	if err := mgr.Test(ctx, draft); err != nil {
		return describeConnectionError(err)
	}

	fmt.Println(maybeFgBold(stdoutIsTTY(), colorGreen, "Connection test passed."))
	return nil
}

func runConnectionsActivate(arg string) error {
	id, err := parseConnectionID(arg)
	if err != nil {
		return err
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}

	if err := mgr.Activate(context.Background(), id); err != nil {
		return fmt.Errorf("failed to activate connection: %w", err)
	}

	fmt.Println(maybeFgBold(stdoutIsTTY(), colorGreen, "Connection activated."))
	return nil
}

func runConnectionsRm(arg string) error {
	id, err := parseConnectionID(arg)
	if err != nil {
		return err
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if !connForce {
		if err := mgr.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to list connections: %w", err)
		}
		name := fmt.Sprintf("connection %d", id)
		for _, c := range mgr.Connections() {
			if c.ID == id {
				name = fmt.Sprintf("connection %q", c.Name)
				break
			}
		}
		if !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete %s?", name)) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := mgr.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	fmt.Println("Connection deleted.")
	return nil
}

// describeConnectionError keeps validation and test failures short; they are
// user errors, not transport problems.
func describeConnectionError(err error) error {
	var verr *connection.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	var terr *connection.TestFailedError
	if errors.As(err, &terr) {
		return fmt.Errorf("connection test failed: %s", terr.Reason)
	}
	return err
}
