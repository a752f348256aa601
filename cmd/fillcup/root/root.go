package root

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/fillyourcup/internal/client"
	"github.com/PabloGalante/fillyourcup/internal/ui"
)

const (
	Version        = "0.1.0"
	defaultAPIURL  = "http://localhost:8080"
	requestTimeout = 30 * time.Second
)

var apiURL string

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fillcup",
		Short:         "Fill Your Cup: small daily tasks, one sip at a time",
		Long:          "fillcup is a terminal client for the Fill Your Cup API: complete tasks, log your mood and follow streaks, badges and weekly goals.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("FILLCUP_API_URL", defaultAPIURL), "base URL of the fillcup API")

	rootCmd.AddCommand(
		newStatusCmd(),
		newDoCmd(),
		newMoodCmd(),
		newOnboardCmd(),
		newGoalsCmd(),
		newBadgesCmd(),
		newCoachCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

// openClient returns an API client and a context bounded by requestTimeout.
func openClient(cmd *cobra.Command) (*client.Client, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	return client.New(apiURL), ctx, cancel
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
