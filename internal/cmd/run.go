// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/aibor/copylibs/internal/archive"
	"github.com/aibor/copylibs/internal/stage"
	"github.com/aibor/copylibs/internal/sys"
)

// Exit codes returned by [Run].
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// IO provides output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	for _, binary := range flags.Binaries {
		err := ValidateFilePath(binary)
		if err != nil {
			return fmt.Errorf("binary %s: %w", binary, err)
		}
	}

	config := sys.ConfigFromEnv(os.Getenv)

	slog.Debug("Configuration",
		slog.String("objdump", config.Objdump),
		slog.String("sysroot", config.Sysroot),
		slog.Any("library_path", config.LibraryPath),
	)

	inspector := sys.Objdump{Executable: config.Objdump}

	closure, err := sys.ResolveClosure(
		ctx,
		config,
		inspector,
		flags.StagingDir,
		flags.Binaries...,
	)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	slog.Debug("Resolved libraries", slog.Int("count", closure.Len()))

	_, err = stage.Stage(closure, flags.StagingDir, cfg.Stdout)
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	if flags.ArchivePath != "" {
		err := archive.WriteFile(flags.ArchivePath, flags.StagingDir)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}

		slog.Debug("Wrote archive", slog.String("path", flags.ArchivePath))
	}

	return nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return exitOK
	}

	return exitUsage
}

func handleRunError(err error) int {
	if err == nil {
		return exitOK
	}

	slog.Error(err.Error())

	return exitError
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug)

	if flags.Version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			return handleRunError(err)
		}

		fmt.Fprintf(cfg.Stdout, "Version: %s\n", buildInfo.Main.Version)

		return exitOK
	}

	err = run(ctx, flags, cfg)

	return handleRunError(err)
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
