// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/ldocgen/internal/logging"
	"github.com/petar-djukic/ldocgen/internal/report"
	"github.com/petar-djukic/ldocgen/pkg/ldocgen"
)

// newRunCmd creates the "run" command.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "run [path]",
		Short:        "Convert Lua files and write the results",
		Long:         "Run converts every .lua file under path and writes the results under the output directory, mirroring the input layout.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, args, false)
		},
	}
}

// newCheckCmd creates the "check" command.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check [path]",
		Short:        "Report files whose generated output is stale",
		Long:         "Check converts every .lua file in memory and compares the result with the output directory. Nothing is written. It fails when any output is missing or differs.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, args, true)
		},
	}

	cmd.Flags().Bool("diff", false, "Print a unified diff for every stale file")
	return cmd
}

// execute runs a conversion or a check and prints the report.
func execute(cmd *cobra.Command, args []string, check bool) error {
	path := viper.GetString("path")
	if len(args) == 1 {
		path = args[0]
	}

	logger, err := logging.New(cmd.ErrOrStderr(), viper.GetString("log-format"), viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	format := viper.GetString("report-format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown report format %q (want text or json)", format)
	}

	cfg := ldocgen.Config{
		Path:         path,
		OutDir:       viper.GetString("out-dir"),
		Jobs:         viper.GetInt("jobs"),
		GroupMembers: viper.GetBool("group-members"),
		DropTags:     viper.GetStringSlice("drop-tags"),
		Logger:       logger,
	}

	c, err := ldocgen.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var rep *ldocgen.Report
	if check {
		rep, err = c.Check(ctx)
	} else {
		rep, err = c.Run(ctx)
	}

	if rep != nil {
		diff, _ := cmd.Flags().GetBool("diff")
		if perr := printReport(cmd.OutOrStdout(), rep, format, check, diff); perr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error printing report: %v\n", perr)
		}
	}
	return err
}

// printReport writes the report to w in the chosen format.
func printReport(w io.Writer, rep *ldocgen.Report, format string, check, diff bool) error {
	if format == "json" {
		return report.WriteJSON(w, rep.Files)
	}
	return report.WriteText(w, rep.Files, report.TextOptions{
		Color:    !viper.GetBool("no-color") && !color.NoColor,
		Warnings: true,
		Diffs:    diff,
		Check:    check,
	})
}
