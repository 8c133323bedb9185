// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command ldocgen rewrites LuaLS-annotated Lua sources into LDoc-ready
// stubs.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ldocgen",
		Short:         "Convert LuaLS annotations to LDoc",
		Long:          "ldocgen rewrites LuaLS/EmmyLua annotations into LDoc tags and empties every function body, so LDoc can document code it cannot run.",
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().String("path", ".", "Lua file or directory to convert")
	rootCmd.PersistentFlags().String("out-dir", ".ldoc_gen", "Output directory")
	rootCmd.PersistentFlags().Int("jobs", 0, "Files converted in parallel (0 = number of CPUs)")
	rootCmd.PersistentFlags().Bool("group-members", false, "Place class members right after their class")
	rootCmd.PersistentFlags().StringSlice("drop-tags", nil, "Unrecognized tags to omit from the output (e.g. type,diagnostic)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "logfmt", "Log format: logfmt or json")
	rootCmd.PersistentFlags().String("report-format", "text", "Report format: text or json")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Bind flags to viper.
	for _, name := range []string{
		"path", "out-dir", "jobs", "group-members", "drop-tags",
		"log-level", "log-format", "report-format", "no-color",
	} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Env vars: LDOCGEN_OUT_DIR, LDOCGEN_LOG_LEVEL, etc.
	viper.SetEnvPrefix("LDOCGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".ldocgen")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print ldocgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ldocgen %s\n", version)
		},
	}
}
