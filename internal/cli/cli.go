package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/app"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/retarget"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns populated app options,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mod-converter", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Marvel Rivals Mod Converter - packages loose-asset UE mods into utoc/ucas/pak containers.

Usage:
  mod-converter [options] <input>

Arguments:
  <input>
    Path to a loose-asset mod folder or a .zip archive of one.

Options:
`)
		flagSet.PrintDefaults()
	}

	outputDirFlag := flagSet.String("output-dir", "", "Directory for the converted container files. Defaults to ./converted_mods.")
	nameFlag := flagSet.String("name", "", "Override the derived mod name.")
	retocFlag := flagSet.String("retoc", "", "Path to the retoc executable. Defaults to probing well-known locations.")
	versionFlag := flagSet.String("version", "", "UE container version tag passed to retoc. Defaults to UE5_3.")
	projectFlag := flagSet.String("project-name", "", "Project folder the assets are staged under. Defaults to Marvel.")
	retargetFromFlag := flagSet.String("retarget-from", "", "Asset path token to replace. Requires --retarget-to of the same length.")
	retargetToFlag := flagSet.String("retarget-to", "", "Replacement for the --retarget-from token.")
	installFlag := flagSet.Bool("install", false, "Copy the converted files into the game's ~mods folder.")
	modsDirFlag := flagSet.String("mods-dir", "", "Game ~mods directory used by --install. Defaults to the Steam install path.")
	configFlag := flagSet.String("config", "", "Path to an HCL settings file. Defaults to ./mod-converter.hcl when present.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Resolve and report what would happen without converting anything.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No input path provided, printing usage.")
		flagSet.Usage()
		return nil, false, &ExitError{Code: 1, Message: "missing required <input> argument"}
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected extra arguments: %v", flagSet.Args()[1:])}
	}
	inputPath := flagSet.Arg(0)
	slog.Debug("Input path determined.", "path", inputPath)

	pair := retarget.Pair{From: *retargetFromFlag, To: *retargetToFlag}
	if err := pair.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	opts := &app.Options{
		InputPath:    inputPath,
		OutputDir:    *outputDirFlag,
		Name:         *nameFlag,
		RetocPath:    *retocFlag,
		Version:      *versionFlag,
		ProjectName:  *projectFlag,
		RetargetFrom: *retargetFromFlag,
		RetargetTo:   *retargetToFlag,
		Install:      *installFlag,
		ModsDir:      *modsDirFlag,
		ConfigPath:   *configFlag,
		DryRun:       *dryRunFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	}

	slog.Debug("CLI parser finished successfully.", "input", opts.InputPath)
	return opts, false, nil
}
