// Package uploader builds the external compile and flash commands for a
// board profile. The subprocess itself stays a black box behind an injectable
// Runner, so callers and tests decide whether anything actually executes.
package uploader

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/vk/blockforge/internal/board"
	"github.com/vk/blockforge/internal/codegen"
)

// CommandResult is the outcome of one external command.
type CommandResult struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited cleanly.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Runner executes an external command. The default runner shells out via
// os/exec; tests inject a fake.
type Runner func(ctx context.Context, argv []string) CommandResult

// Flasher wraps the arduino-cli compile step and the per-board upload tools.
type Flasher struct {
	toolsRoot string
	runner    Runner
}

// New creates a flasher rooted at the bundled tools directory. A nil runner
// selects the real subprocess runner.
func New(toolsRoot string, runner Runner) *Flasher {
	if runner == nil {
		runner = execRunner
	}
	return &Flasher{toolsRoot: toolsRoot, runner: runner}
}

// Compile builds the sketch directory through arduino-cli for the board's
// fully-qualified identifier.
func (f *Flasher) Compile(ctx context.Context, sketchDir string, profile *board.Profile) CommandResult {
	cli := filepath.Join(f.toolsRoot, "ArduinoCLI", "arduino-cli")
	return f.runner(ctx, []string{cli, "compile", "--fqbn", profile.FQBN, sketchDir})
}

// Flash renders the board's upload command template and runs it. The template
// sees the resolved tool path, serial port, hex path and upload speed.
func (f *Flasher) Flash(ctx context.Context, hexPath string, profile *board.Profile, port string) CommandResult {
	vars := map[string]string{
		"avrdude":  f.toolPath(profile.Upload.Tool),
		"port":     port,
		"hex_path": hexPath,
		"speed":    strconv.Itoa(profile.Upload.Speed),
	}
	command := codegen.ExpandMap(profile.Upload.Command, vars)
	return f.runner(ctx, splitCommand(command))
}

// toolPath resolves a profile's upload tool name to a binary under the tools
// root.
func (f *Flasher) toolPath(tool string) string {
	switch tool {
	case "avrdude":
		return filepath.Join(f.toolsRoot, "Tools", "avrdude", "avrdude")
	case "esptool":
		return filepath.Join(f.toolsRoot, "Tools", "esptool.py")
	case "picotool":
		return filepath.Join(f.toolsRoot, "Tools", "picotool")
	default:
		return filepath.Join(f.toolsRoot, tool)
	}
}

func execRunner(ctx context.Context, argv []string) CommandResult {
	if len(argv) == 0 {
		return CommandResult{ExitCode: -1, Stderr: "empty command"}
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	if err != nil {
		code = -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
	}
	return CommandResult{
		Command:  argv,
		ExitCode: code,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}

// splitCommand breaks a rendered command template into argv, honoring single
// and double quotes around arguments with spaces (tool paths on Windows
// installs).
func splitCommand(command string) []string {
	var argv []string
	var current []byte
	var quote byte
	inArg := false

	for i := 0; i < len(command); i++ {
		c := command[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current = append(current, c)
			}
		case c == '\'' || c == '"':
			quote = c
			inArg = true
		case c == ' ' || c == '\t':
			if inArg {
				argv = append(argv, string(current))
				current = current[:0]
				inArg = false
			}
		default:
			current = append(current, c)
			inArg = true
		}
	}
	if inArg {
		argv = append(argv, string(current))
	}
	return argv
}
