// Package cli implements the swakarthi command-line interface: a serve
// command that runs the API server, and client commands that talk to a
// running server through the SDK.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/client"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Output     string
	ServerAddr string
	Timeout    time.Duration
}

type rootContextKey struct{}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "swakarthi",
		Short:   "Swakarthi child body-measurement prediction service",
		Long:    "Swakarthi predicts child body measurements from age, gender, height and\nweight, combining brand size charts, a statistical model and anthropometric\nformulas.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(context.WithValue(cmd.Context(), rootContextKey{}, opts))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: configs/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVarP(&opts.Output, "output", "o", "text", "output format (text, json)")
	pf.StringVar(&opts.ServerAddr, "server", "http://localhost:5000", "API server address")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "request timeout")

	cmd.AddCommand(
		NewServeCmd(),
		NewPredictCmd(),
		NewGetCmd(),
		NewHealthCmd(),
	)

	return cmd
}

// rootOptions extracts the global flags from the command context.
func rootOptions(cmd *cobra.Command) *RootOptions {
	if opts, ok := cmd.Context().Value(rootContextKey{}).(*RootOptions); ok {
		return opts
	}
	return &RootOptions{Output: "text", ServerAddr: "http://localhost:5000", Timeout: 30 * time.Second}
}

// newClient builds the SDK client from the global flags.
func newClient(opts *RootOptions) (*client.Client, error) {
	return client.NewClient(opts.ServerAddr, client.WithTimeout(opts.Timeout))
}

// printResult renders v as indented JSON when --output=json, otherwise via
// the supplied text renderer.
func printResult(cmd *cobra.Command, opts *RootOptions, v interface{}, text func()) error {
	if opts.Output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text()
	return nil
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// ExitOnError prints err and terminates with a non-zero status.
func ExitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
