package rootfind

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickFloat(cli float64, local, global *float64) float64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickSet is for values where zero is meaningful, such as a domain bound
// or a seed. changed reports whether the flag was given explicitly.
func pickSet[T any](changed bool, cli T, local, global *T) (T, bool) {
	switch {
	case changed:
		return cli, true
	case local != nil:
		return *local, true
	case global != nil:
		return *global, true
	}
	var zero T
	return zero, false
}

// colorEnabled reports whether stdout should receive ANSI styling.
func colorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// stateDir resolves --dir, which holds the config, cache and history files.
func stateDir() (string, error) {
	dir, err := filepath.Abs(flagDir)
	if err != nil {
		return "", fmt.Errorf("resolve --dir %q: %w", flagDir, err)
	}
	return dir, nil
}
