package export

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoShareTarget is returned when the platform has nothing to share with.
var ErrNoShareTarget = errors.New("no share target available")

// Sharer hands a finished file to the user.
type Sharer interface {
	Share(ctx context.Context, path string) error
}

// CommandSharer opens the file with an external command. The path is
// appended as the last argument.
type CommandSharer struct {
	Command []string
}

// DefaultShareCommand is the platform's file opener.
func DefaultShareCommand() []string {
	if runtime.GOOS == "darwin" {
		return []string{"open"}
	}
	return []string{"xdg-open"}
}

// ParseCommand splits a command line on whitespace.
func ParseCommand(s string) []string {
	return strings.Fields(s)
}

// Share implements Sharer.
func (s *CommandSharer) Share(ctx context.Context, path string) error {
	if len(s.Command) == 0 {
		return ErrNoShareTarget
	}
	bin, err := exec.LookPath(s.Command[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoShareTarget, err)
	}
	args := append(append([]string{}, s.Command[1:]...), path)
	out, err := exec.CommandContext(ctx, bin, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("running %s: %w: %s", s.Command[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
