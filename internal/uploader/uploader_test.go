package uploader_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockforge/internal/testutil"
	"github.com/vk/blockforge/internal/uploader"
)

// recordingRunner captures argv instead of spawning anything.
func recordingRunner(captured *[]string) uploader.Runner {
	return func(_ context.Context, argv []string) uploader.CommandResult {
		*captured = append([]string(nil), argv...)
		return uploader.CommandResult{Command: argv, ExitCode: 0}
	}
}

func TestCompileCommand(t *testing.T) {
	var argv []string
	flasher := uploader.New("/opt/tools", recordingRunner(&argv))

	result := flasher.Compile(context.Background(), "/tmp/sketch", testutil.Uno())
	require.True(t, result.Success())

	want := []string{
		filepath.Join("/opt/tools", "ArduinoCLI", "arduino-cli"),
		"compile", "--fqbn", "arduino:avr:uno", "/tmp/sketch",
	}
	assert.Equal(t, want, argv)
}

func TestFlashRendersUploadTemplate(t *testing.T) {
	var argv []string
	flasher := uploader.New("/opt/tools", recordingRunner(&argv))

	flasher.Flash(context.Background(), "/tmp/sketch.hex", testutil.Uno(), "/dev/ttyACM0")

	want := []string{
		filepath.Join("/opt/tools", "Tools", "avrdude", "avrdude"),
		"-p", "m328p",
		"-P", "/dev/ttyACM0",
		"-b", "115200",
		"-U", "flash:w:/tmp/sketch.hex",
	}
	assert.Equal(t, want, argv)
}

func TestFlashQuotedToolPath(t *testing.T) {
	var argv []string
	flasher := uploader.New("/opt/tools", recordingRunner(&argv))

	profile := testutil.Uno()
	profile.Upload.Command = `"{avrdude}" -P {port} upload "{hex_path}"`
	flasher.Flash(context.Background(), "/tmp/my sketch.hex", profile, "COM3")

	want := []string{
		filepath.Join("/opt/tools", "Tools", "avrdude", "avrdude"),
		"-P", "COM3", "upload", "/tmp/my sketch.hex",
	}
	assert.Equal(t, want, argv)
}

func TestCommandResultSuccess(t *testing.T) {
	assert.True(t, uploader.CommandResult{ExitCode: 0}.Success())
	assert.False(t, uploader.CommandResult{ExitCode: 1}.Success())
}

func TestParseCompileErrors(t *testing.T) {
	output := `Compiling sketch...
/tmp/sketch/sketch.ino:4:3: error: 'digitalWrit' was not declared in this scope
/tmp/sketch/sketch.ino:9:1: warning: unused variable 'x'
/tmp/sketch/sketch.ino:12:5: error: expected ';' before '}' token
not a compiler line
also:not:numbers: error: nope`

	got := uploader.ParseCompileErrors(output)
	want := []uploader.CompileError{
		{File: "/tmp/sketch/sketch.ino", Line: 4, Column: 3, Message: "error: 'digitalWrit' was not declared in this scope"},
		{File: "/tmp/sketch/sketch.ino", Line: 12, Column: 5, Message: "error: expected ';' before '}' token"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parsed errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCompileErrorsEmptyOutput(t *testing.T) {
	assert.Empty(t, uploader.ParseCompileErrors(""))
	assert.Empty(t, uploader.ParseCompileErrors("everything is fine\n"))
}
