package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"arbor/internal/domain"
	"arbor/internal/logging"
)

// runGit executes a read-only git command in dir and returns stdout.
// Cancellation kills the process; read-only commands are safe to abort.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", gitError(dir, args, stderr.String(), err)
	}
	return stdout.String(), nil
}

// runGitMutating executes a mutating git command in dir. The process is
// deliberately not killed on context cancellation: aborting a mutation
// mid-flight can leave the repository metadata half-written. On timeout the
// caller gets an error while git runs to completion; a subsequent list or
// status call reconciles with whatever state git left behind.
func runGitMutating(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", domain.NewGitError(fmt.Sprintf("failed to start git %s: %v", args[0], err), false, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return "", gitError(dir, args, stderr.String(), err)
		}
		return stdout.String(), nil
	case <-ctx.Done():
		logging.Logger.Warn("Git command abandoned by caller, letting it finish",
			"dir", dir, "args", args)
		return "", domain.NewGitError(
			fmt.Sprintf("git %s in %s did not finish before cancellation; it may still complete",
				strings.Join(args, " "), dir),
			true, ctx.Err())
	}
}

// gitError wraps a non-zero git exit into the typed error taxonomy, tagged
// with the subcommand and repository for context
func gitError(dir string, args []string, stderr string, err error) error {
	stderr = strings.TrimSpace(stderr)
	message := fmt.Sprintf("git %s failed in %s", strings.Join(args, " "), dir)
	if stderr != "" {
		message = fmt.Sprintf("%s: %s", message, stderr)
	}

	logging.Logger.Debug("Git command failed", "dir", dir, "args", args, "stderr", stderr)
	return domain.NewGitError(message, isLockContention(stderr), err)
}

// isLockContention detects git's own lock-file contention so callers can
// treat the failure as retryable
func isLockContention(stderr string) bool {
	return strings.Contains(stderr, "index.lock") ||
		strings.Contains(stderr, "Another git process seems to be running")
}
