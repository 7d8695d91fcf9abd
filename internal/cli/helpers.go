package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/coderite/auditor/internal/api"
	"github.com/coderite/auditor/internal/config"
	"github.com/coderite/auditor/internal/domain"
)

// loadConfig loads and validates the config, then applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.ApplyCLIFlags(flagBaseURL, flagTimeout)
	return cfg, nil
}

// loadClient loads the config and builds the backend client from it.
func loadClient() (*config.Config, *api.HTTPClient, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout()), nil
}

func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func terminalWidth() int {
	if !stdoutIsTTY() {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// confirm prompts the user with a y/N question on the given streams.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// maskKey redacts an API key for display, keeping a short identifying suffix.
func maskKey(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// providerLabel renders a provider for listings.
func providerLabel(p domain.Provider) string {
	if p == "" {
		return "(unknown)"
	}
	return string(p)
}
