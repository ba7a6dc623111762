// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/aibor/copylibs/internal/sys"
)

const (
	name = "copylibs"

	usageMessage = `Usage of 'copylibs':
    copylibs [flags...] stagingdir binary [binary...]

Copies all shared objects the given binaries require, directly or indirectly,
into stagingdir/lib. Files present in stagingdir/lib already are not copied
again.

Shared objects are looked up like the dynamic linker does, using the RUNPATH
of each binary, LIBRARY_PATH, SYSROOT/etc/ld.so.conf, the files in
SYSROOT/etc/ld.so.conf.d, SYSROOT/lib and stagingdir/lib, in this order.

Environment variables:
	OBJDUMP         objdump binary to use (default: objdump)
	SYSROOT         root of the target system (default: /)
	LIBRARY_PATH    colon separated list of additional library directories
`
)

type flags struct {
	StagingDir  string
	Binaries    []string
	ArchivePath string
	Debug       bool
	Version     bool
}

func newFlagSet(flags *flags, output io.Writer) *flag.FlagSet {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), usageMessage)
		fmt.Fprintln(flagSet.Output(), "\nFlags:")
		flagSet.PrintDefaults()
	}

	flagSet.Var(
		(*FilePath)(&flags.ArchivePath),
		"archive",
		"also write the staging directory into a cpio archive at this path",
	)

	flagSet.BoolVar(
		&flags.Debug,
		"debug",
		flags.Debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&flags.Version,
		"version",
		flags.Version,
		"show version and exit",
	)

	return flagSet
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	flags := &flags{}
	flagSet := newFlagSet(flags, output)

	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--". Errors are printed by the flag set already.
	err := flagSet.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}

		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	if flags.Version {
		return flags, nil
	}

	positionalArgs := flagSet.Args()

	if len(positionalArgs) < 1 {
		return nil, fail(flagSet, "no staging directory given", nil)
	}

	if len(positionalArgs) < 2 {
		return nil, fail(flagSet, "no binary given", nil)
	}

	flags.StagingDir, err = sys.AbsolutePath(positionalArgs[0])
	if err != nil {
		return nil, fail(flagSet, "staging directory", err)
	}

	for _, arg := range positionalArgs[1:] {
		binary, err := sys.AbsolutePath(arg)
		if err != nil {
			return nil, fail(flagSet, "binary path", err)
		}

		flags.Binaries = append(flags.Binaries, binary)
	}

	return flags, nil
}

// fail fails like flag does. It prints the error first and then usage.
func fail(flagSet *flag.FlagSet, msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(flagSet.Output(), err.Error())

	flagSet.Usage()

	return err
}
