// Package main provides the car-viewer binary: an interactive 3D car configurator with
// a chat and voice interface.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "car-viewer"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	modelPath  string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: "3D car configurator",
		Long: `car-viewer loads a glTF car model, finds its body, rims, glass and doors,
and lets you swap paint, rim and glass materials, change the lighting and drive
the car with a follow camera.

Every control can also be reached by chat ("make the body red") in the in-window
terminal (ESC) or by voice (V), or as a "cmd" line ("cmd rims gold").`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML), default "+defaultConfigHint)
	cmd.PersistentFlags().StringVarP(&opts.modelPath, "model", "m", "", "Car model (.gltf or .glb), overrides the config")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	cmd.AddCommand(classifyCmd(opts))
	cmd.AddCommand(chatCmd(opts))
	return cmd
}
