// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/blockforge/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("blockforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
BlockForge - compiles visual block programs into Arduino sketches.

Usage:
  blockforge [options] [PROJECT_PATH]

Arguments:
  PROJECT_PATH
    Path to a project document (.json) saved by the editor.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Path to the project document.")
	pFlag := flagSet.String("p", "", "Path to the project document (shorthand).")
	blocksFlag := flagSet.String("blocks", "data/blocks.json", "Path to the block catalog document (.hcl, .json or .yaml).")
	boardsFlag := flagSet.String("boards", "data/boards.json", "Path to the board profiles document (.hcl, .json or .yaml).")
	boardFlag := flagSet.String("board", "", "Target board id. Overrides the board recorded in the project.")
	outFlag := flagSet.String("o", "", "Write the generated sketch to this file instead of stdout.")
	editorURLFlag := flagSet.String("editor-url", "", "socket.io endpoint of a listening editor for live updates.")
	checkFlag := flagSet.Bool("check", false, "Validate the project and print diagnostics without generating.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *projectFlag != "" {
		path = *projectFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		slog.Debug("No project path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
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

	config, err := app.NewConfig(app.Config{
		ProjectPath: path,
		BlocksPath:  *blocksFlag,
		BoardsPath:  *boardsFlag,
		BoardID:     *boardFlag,
		OutPath:     *outFlag,
		EditorURL:   *editorURLFlag,
		CheckOnly:   *checkFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
