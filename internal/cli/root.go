// Package cli implements the cobra-based CLI commands for cabinetgen.
//
// Each subcommand (generate, cutlist, batch, standards, library) is
// defined in its own file within this package. This file defines the
// root command that serves as the parent for all subcommands and handles
// global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/cabinetgen/internal/logging"
	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine consumption.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// standardsPath points to a YAML file overriding construction standards.
	standardsPath string

	// logFormat selects the zap encoder: "console" or "json".
	logFormat string
)

// Process-wide state set up by the root command before any subcommand runs.
var (
	logger          = defaultLogger()
	activeStandards = standards.Default()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action; it only provides
// help text and global flags, and prepares the logger and construction
// standards for the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cabinetgen",
		Short: "Parametric base-cabinet generator",
		Long: `cabinetgen derives every panel, shelf and hardware point of a two-door
base cabinet from five numbers: width, depth, height, material thickness
and shelf count.

The result can be realized into a geometry document, printed as a shop
cut list, or exported as JSON or YAML. Hardware blocks (hinges, pulls)
can be pulled from a remote block library and placed at the generated
reference points.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&standardsPath, "standards", "",
		"YAML file overriding construction standards (see 'cabinetgen standards')")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format on stderr: console, json")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewCutListCommand())
	rootCmd.AddCommand(NewBatchCommand())
	rootCmd.AddCommand(NewStandardsCommand())
	rootCmd.AddCommand(NewLibraryCommand())

	return rootCmd
}

// defaultLogger is the warn-level console logger in effect until setup
// has read the global flags.
func defaultLogger() *zap.Logger {
	return logging.NewOrNop(logging.Config{Level: "warn", Format: "console"})
}

// setup builds the logger and loads the construction standards from the
// global flags.
func setup() error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	l, err := logging.New(logging.Config{Level: level, Format: logFormat})
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid --log-format", err)
	}
	logger = l

	std, err := standards.Load(standardsPath)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load construction standards", err)
	}
	activeStandards = std
	if standardsPath != "" {
		VerboseLog("Using construction standards from %s", standardsPath)
	}
	return nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; domain errors are mapped by model.ExitCodeFor; anything
// else exits with code 1.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err == nil {
		return
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}

	printError(err.Error(), nil)
	os.Exit(int(model.ExitCodeFor(err)))
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// We write to stderr for errors, even in JSON mode, because stdout
		// is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog emits a debug-level log line, visible only with --verbose.
// This is used throughout the CLI for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
