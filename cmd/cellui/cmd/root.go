// Package cmd implements the cellui CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/cellui/internal/config"
	"github.com/go-drift/cellui/internal/logger"
)

var (
	projectDir            string
	logFile               string
	logLevel              string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "cellui",
	Short: "Immediate-mode terminal UI engine",
	Long: `cellui rebuilds a terminal UI from a single build function every frame.

Use "cellui run" to start the demo, "cellui snapshot" to render a frame
without a terminal and "cellui config" to print the resolved project
configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "project directory (default: the enclosing Go module)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd, snapshotCmd, configCmd)
}

// Execute runs the root command.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("cellui %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("cellui %s\n", version)
}

// resolveConfig resolves the project config and applies the persistent
// flags on top of it.
func resolveConfig(cmd *cobra.Command) (*config.Resolved, error) {
	dir := projectDir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("project directory: %w", err)
	}

	cfg, source, err := config.LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	applyRunFlags(cmd, cfg)
	return cfg.Resolve(dir, source)
}

// startLogging opens the log file when one is configured. The returned
// function closes it.
func startLogging(r *config.Resolved) (func(), error) {
	if r.LogFile == "" {
		logger.SetLevel(r.SlogLevel())
		return func() {}, nil
	}
	if err := logger.Init(r.LogFile, r.SlogLevel()); err != nil {
		return nil, err
	}
	return logger.Close, nil
}
