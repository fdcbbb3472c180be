package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrNoTool is returned when no clipboard tool is found in PATH
var ErrNoTool = errors.New("no clipboard tool found")

// Tool describes an external program that reads clipboard text from stdin
type Tool struct {
	Name string
	Args []string
}

// DefaultTools returns the candidate tools for the current platform,
// most preferred first.
func DefaultTools() []Tool {
	switch runtime.GOOS {
	case "darwin":
		return []Tool{{Name: "pbcopy"}}
	case "windows":
		return []Tool{{Name: "clip.exe"}}
	default:
		return []Tool{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		}
	}
}

// ParseTool parses a command line like "xclip -selection clipboard"
func ParseTool(s string) (Tool, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Tool{}, fmt.Errorf("empty clipboard tool")
	}
	return Tool{Name: fields[0], Args: fields[1:]}, nil
}

// CommandWriter pipes text into an external clipboard tool. A circuit
// breaker stops invoking the tool after repeated failures.
type CommandWriter struct {
	tool    Tool
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	run     func(ctx context.Context, tool Tool, input []byte) error
}

// NewCommandWriter creates a writer for the given tool
func NewCommandWriter(tool Tool) *CommandWriter {
	w := &CommandWriter{
		tool:    tool,
		timeout: 2 * time.Second,
		run:     runTool,
	}
	w.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "clipboard:" + tool.Name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return w
}

// DetectCommandWriter returns a writer for the first tool found in PATH
func DetectCommandWriter(tools []Tool) (*CommandWriter, error) {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool.Name); err == nil {
			return NewCommandWriter(tool), nil
		}
	}
	return nil, ErrNoTool
}

// Tool returns the tool this writer invokes
func (w *CommandWriter) Tool() Tool {
	return w.tool
}

// Write implements Writer
func (w *CommandWriter) Write(ctx context.Context, text string) error {
	_, err := w.breaker.Execute(func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()
		return nil, w.run(runCtx, w.tool, []byte(text))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", w.tool.Name, err)
	}
	return nil
}

func runTool(ctx context.Context, tool Tool, input []byte) error {
	cmd := exec.CommandContext(ctx, tool.Name, tool.Args...)
	cmd.Stdin = bytes.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
