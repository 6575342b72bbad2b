package rootfind

import (
	"fmt"
	"runtime"
	"runtime/debug"

	semver "github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the rootfind version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := currentVersion()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rootfind v%s (%s)\n", v, runtime.Version())
			if rev := revision(); rev != "" {
				fmt.Fprintf(out, "revision %s\n", rev)
			}
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

// currentVersion parses the build version, which may carry a leading v.
func currentVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid build version %q: %w", version, err)
	}
	return v, nil
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
