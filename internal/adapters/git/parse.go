package git

import (
	"fmt"
	"regexp"
	"strings"

	"arbor/internal/domain"
)

// Parsers for git's textual output. Each parser has an explicit expected
// grammar per subcommand and fails on unrecognized output rather than
// guessing; callers surface those failures as GIT_ERROR.

const branchRefPrefix = "refs/heads/"

var fullHashPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// parseWorktreeList parses `git worktree list --porcelain` output.
//
// Grammar: blocks separated by blank lines. Each block starts with
// "worktree <path>" followed by "HEAD <sha>" and either
// "branch refs/heads/<name>" or the standalone marker "detached".
// "bare", "locked" and "prunable" markers are tolerated.
// The first block is always the main working directory.
func parseWorktreeList(output string) ([]domain.WorktreeRef, error) {
	var refs []domain.WorktreeRef
	var current *domain.WorktreeRef

	flush := func() {
		if current != nil {
			refs = append(refs, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line == "" {
			flush()
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &domain.WorktreeRef{Path: value}
		case "HEAD":
			if current == nil {
				return nil, fmt.Errorf("worktree list: HEAD line outside a worktree block")
			}
			current.Head = value
		case "branch":
			if current == nil {
				return nil, fmt.Errorf("worktree list: branch line outside a worktree block")
			}
			if !strings.HasPrefix(value, branchRefPrefix) {
				return nil, fmt.Errorf("worktree list: unexpected branch ref %q", value)
			}
			current.Branch = strings.TrimPrefix(value, branchRefPrefix)
		case "detached":
			if current == nil {
				return nil, fmt.Errorf("worktree list: detached marker outside a worktree block")
			}
			current.Detached = true
		case "bare", "locked", "prunable":
			// markers we don't need to track
		default:
			return nil, fmt.Errorf("worktree list: unrecognized line %q", line)
		}
	}
	flush()

	if len(refs) > 0 {
		refs[0].IsMain = true
	}
	return refs, nil
}

// parseBranchList parses `git branch --list` output.
//
// Grammar: one branch per line, prefixed with "* " (current), "+ "
// (checked out in a linked worktree), or two spaces. A detached HEAD shows
// as "* (HEAD detached at <sha>)" and is skipped; the list then has no
// current branch.
func parseBranchList(output string) (*domain.BranchList, error) {
	list := &domain.BranchList{Branches: []domain.BranchInfo{}}

	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line == "" {
			continue
		}
		if len(line) < 3 {
			return nil, fmt.Errorf("branch list: unrecognized line %q", line)
		}

		marker, name := line[:2], line[2:]
		switch marker {
		case "* ", "+ ", "  ":
		default:
			return nil, fmt.Errorf("branch list: unrecognized marker in line %q", line)
		}

		// Detached HEAD or "(no branch)" placeholder
		if strings.HasPrefix(name, "(") {
			continue
		}

		current := marker == "* "
		if current {
			list.CurrentBranch = name
		}
		list.Branches = append(list.Branches, domain.BranchInfo{
			Name:      name,
			IsCurrent: current,
		})
	}

	return list, nil
}

// parseStatusCount parses `git status --porcelain` output and returns the
// number of changed paths, counting staged, modified, and untracked files.
//
// Grammar: one path per line, "XY <path>" where X and Y are single status
// columns ("??" for untracked). An empty output means a clean tree.
func parseStatusCount(output string) (int, error) {
	count := 0
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line == "" {
			continue
		}
		if len(line) < 4 || line[2] != ' ' {
			return 0, fmt.Errorf("status: unrecognized line %q", line)
		}
		count++
	}
	return count, nil
}

// abbreviateHash validates a full 40-character commit hash and returns its
// 8-character abbreviation
func abbreviateHash(output string) (string, error) {
	full := strings.TrimSpace(output)
	if !fullHashPattern.MatchString(full) {
		return "", fmt.Errorf("unexpected commit hash %q", full)
	}
	return full[:8], nil
}
