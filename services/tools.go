package services

import (
	"bytes"
	"context"
	"os/exec"
)

// Names of the external executables the pipeline shells out to.
const (
	ToolExtractor  = "yt-dlp"
	ToolTranscoder = "ffmpeg"
)

// RequiredTools lists every executable that must be on PATH for a
// download to work.
var RequiredTools = []string{ToolExtractor, ToolTranscoder}

// CommandResult carries the captured output of a finished subprocess.
type CommandResult struct {
	Stdout string
	Stderr string
}

// CommandRunner abstracts subprocess execution and PATH lookup so the
// pipeline can be exercised against a stub toolchain in tests.
type CommandRunner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

type execRunner struct{}

// NewCommandRunner returns a CommandRunner backed by os/exec.
func NewCommandRunner() CommandRunner {
	return &execRunner{}
}

func (*execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (*execRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// MissingTools returns the required executables absent from PATH. An empty
// result means the toolchain is healthy.
func MissingTools(runner CommandRunner) []string {
	var missing []string
	for _, tool := range RequiredTools {
		if _, err := runner.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}
