package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List document categories with dedicated checklists",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCategories()
	},
}

func runCategories() error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	categories, err := client.Categories(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Println("No categories available.")
		return nil
	}

	tty := stdoutIsTTY()
	for _, c := range categories {
		fmt.Fprintln(os.Stdout, maybeFg(tty, colorCyan, c))
	}
	return nil
}
