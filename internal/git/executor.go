package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/huimingz/commitbuddy/internal/log"
)

// MaxDiffBytes caps how much diff output is captured (1 MiB)
const MaxDiffBytes = 1 << 20

// notRepoExitCode is what git exits with when no repository is found
const notRepoExitCode = 128

// ErrNotARepository is returned when the working directory is not inside a git repository
var ErrNotARepository = errors.New("not a git repository")

// Executor defines the interface for git command execution
type Executor interface {
	// StagedDiff returns the unified diff of staged changes, capped at MaxDiffBytes.
	// An empty string means nothing is staged.
	StagedDiff(ctx context.Context) (string, error)

	// StagedFiles returns the paths of staged files in git's order
	StagedFiles(ctx context.Context) ([]string, error)

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error

	// GitDir returns the absolute path of the .git directory
	GitDir(ctx context.Context) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir  string
	maxBytes int
}

// NewExecutor creates a new DefaultExecutor rooted at workDir
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir, maxBytes: MaxDiffBytes}
}

// cappedBuffer keeps the first limit bytes and silently drops the rest,
// so the child process never blocks on a full pipe.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	remaining := c.limit - c.buf.Len()
	if remaining <= 0 {
		c.truncated = len(p) > 0 || c.truncated
		return len(p), nil
	}
	if len(p) > remaining {
		c.buf.Write(p[:remaining])
		c.truncated = true
		return len(p), nil
	}
	c.buf.Write(p)
	return len(p), nil
}

// String returns the captured output. A multi-byte character split by the
// cap is dropped so the result stays valid UTF-8.
func (c *cappedBuffer) String() string {
	b := c.buf.Bytes()
	if c.truncated {
		b = trimPartialRune(b)
	}
	return string(b)
}

func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

// runGit runs a git command and returns its raw stdout, capped at e.maxBytes.
// stderr is logged, never returned.
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	stdout := &cappedBuffer{limit: e.maxBytes}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	diagnostics := strings.TrimSpace(stderr.String())

	if err != nil {
		if isNotRepository(err, diagnostics) {
			log.Debug("git %s: %s", args[0], firstLine(diagnostics))
			return "", ErrNotARepository
		}
		if diagnostics != "" {
			log.Warn("git %s: %s", strings.Join(args, " "), firstLine(diagnostics))
		}
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}

	if diagnostics != "" {
		log.Debug("git %s stderr: %s", strings.Join(args, " "), diagnostics)
	}
	if stdout.truncated {
		log.Debug("git %s output truncated to %d bytes", strings.Join(args, " "), e.maxBytes)
	}

	return stdout.String(), nil
}

// isNotRepository recognizes git's "no repository" failure. Outside a
// repository `git diff --cached` falls back to --no-index mode and exits
// with a usage error instead of 128, so both shapes are accepted.
func isNotRepository(err error, stderr string) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	lower := strings.ToLower(stderr)
	if exitErr.ExitCode() == notRepoExitCode && strings.Contains(lower, "not a git repository") {
		return true
	}
	return strings.Contains(lower, "usage: git diff --no-index")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// StagedDiff returns the diff of staged changes
func (e *DefaultExecutor) StagedDiff(ctx context.Context) (string, error) {
	diff, err := e.runGit(ctx, "diff", "--cached", "--no-color", "--no-ext-diff")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diff) == "" {
		return "", nil
	}
	return diff, nil
}

// StagedFiles returns the staged file paths
func (e *DefaultExecutor) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := e.runGit(ctx, "diff", "--cached", "--name-only", "-z")
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.runGit(ctx, "commit", "-m", message)
	return err
}

// GitDir returns the absolute path of the repository's .git directory
func (e *DefaultExecutor) GitDir(ctx context.Context) (string, error) {
	out, err := e.runGit(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
