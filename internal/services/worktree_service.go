package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"arbor/internal/domain"
	"arbor/internal/logging"
	"arbor/internal/ports"
	"arbor/internal/repolock"
)

// statusConcurrency caps parallel git status invocations during list
const statusConcurrency = 4

// WorktreeService manages the worktree lifecycle: idempotent creation,
// lenient deletion, and inventory listing with optional status inspection
type WorktreeService struct {
	gitRepo ports.GitRepository
	locks   *repolock.Registry
}

// NewWorktreeService creates a new WorktreeService
func NewWorktreeService(gitRepo ports.GitRepository, locks *repolock.Registry) *WorktreeService {
	return &WorktreeService{
		gitRepo: gitRepo,
		locks:   locks,
	}
}

// resolveRoot resolves repoPath to the main repository root. Linked
// worktrees resolve to their primary checkout, so locking and worktree
// operations always key on the same root.
func (s *WorktreeService) resolveRoot(ctx context.Context, repoPath string) (string, error) {
	ok, root := s.gitRepo.IsGitRepo(ctx, repoPath)
	if !ok {
		return "", domain.NewRepositoryNotFoundError(repoPath)
	}
	return s.gitRepo.MainRepoRoot(ctx, root)
}

// Create ensures a worktree exists for branchName under repoPath.
//
// When a worktree already holds the branch the existing descriptor is
// returned with IsNew=false and nothing is mutated. Otherwise the branch is
// created from the current tip if it does not exist, and a linked worktree
// is created at the deterministic path <root>/.worktrees/<sanitized branch>.
func (s *WorktreeService) Create(ctx context.Context, repoPath, branchName string) (*domain.CreateResult, error) {
	if err := requireFields(
		field{"repoPath", repoPath},
		field{"branchName", branchName},
	); err != nil {
		return nil, err
	}

	root, err := s.resolveRoot(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	var result *domain.CreateResult
	err = s.locks.WithWrite(root, func() error {
		existing, err := s.gitRepo.WorktreeForBranch(ctx, root, branchName)
		if err != nil {
			return err
		}
		if existing != nil {
			logging.Logger.Debug("Worktree already exists for branch",
				"branch", branchName, "path", existing.Path)
			result = &domain.CreateResult{
				Branch: branchName,
				Path:   existing.Path,
				IsNew:  false,
			}
			return nil
		}

		wtPath := s.gitRepo.WorktreePath(root, branchName)
		if err := s.gitRepo.AddWorktree(ctx, root, wtPath, branchName); err != nil {
			return err
		}

		result = &domain.CreateResult{
			Branch: branchName,
			Path:   wtPath,
			IsNew:  true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the worktree at worktreePath. Deletion means "ensure
// absent": an already missing directory still reports success. When
// deleteBranch is set the branch ref is removed afterwards; a branch
// deletion failure surfaces as an error but the directory stays removed.
func (s *WorktreeService) Delete(ctx context.Context, repoPath, worktreePath string, deleteBranch bool) error {
	if err := requireFields(
		field{"repoPath", repoPath},
		field{"worktreePath", worktreePath},
	); err != nil {
		return err
	}

	root, err := s.resolveRoot(ctx, repoPath)
	if err != nil {
		return err
	}

	return s.locks.WithWrite(root, func() error {
		// Resolve the branch before removal; afterwards the mapping is gone
		ref, err := s.gitRepo.WorktreeAtPath(ctx, root, worktreePath)
		if err != nil {
			return err
		}
		if ref != nil && ref.IsMain {
			return domain.NewGitError("refusing to remove the main working directory", false, nil)
		}

		if err := s.gitRepo.RemoveWorktree(ctx, root, worktreePath); err != nil {
			return err
		}

		if !deleteBranch {
			return nil
		}
		if ref == nil || ref.Branch == "" {
			logging.Logger.Warn("Cannot delete branch for unregistered worktree",
				"path", worktreePath)
			return nil
		}
		return s.gitRepo.DeleteBranch(ctx, root, ref.Branch)
	})
}

// List enumerates every linked worktree plus the implicit main entry,
// deduplicated by branch. With includeStatus the dirty state of each entry
// is computed concurrently; a status failure degrades that entry rather
// than failing the list.
func (s *WorktreeService) List(ctx context.Context, repoPath string, includeStatus bool) ([]domain.Worktree, error) {
	if err := requireFields(field{"repoPath", repoPath}); err != nil {
		return nil, err
	}

	root, err := s.resolveRoot(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	var worktrees []domain.Worktree
	err = s.locks.WithRead(root, func() error {
		refs, err := s.gitRepo.ListWorktreeRefs(ctx, root)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(refs))
		for _, ref := range refs {
			if ref.Branch != "" {
				if seen[ref.Branch] {
					continue
				}
				seen[ref.Branch] = true
			}
			worktrees = append(worktrees, domain.Worktree{
				BranchName: ref.Branch,
				Path:       ref.Path,
				IsMain:     ref.IsMain,
			})
		}

		if !includeStatus {
			return nil
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(statusConcurrency)
		for i := range worktrees {
			g.Go(func() error {
				count, err := s.gitRepo.CountChangedFiles(gctx, worktrees[i].Path)
				if err != nil {
					// Non-fatal: the entry stays listed without status
					logging.Logger.Debug("Failed to get worktree status",
						"path", worktrees[i].Path, "error", err)
					return nil
				}
				worktrees[i].ChangedFilesCount = count
				worktrees[i].HasChanges = count > 0
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return worktrees, nil
}

// Status computes the dirty state of a single worktree, counting staged,
// modified, and untracked paths against the last commit
func (s *WorktreeService) Status(ctx context.Context, worktreePath string) (*domain.WorktreeStatus, error) {
	if err := requireFields(field{"worktreePath", worktreePath}); err != nil {
		return nil, err
	}

	ok, _ := s.gitRepo.IsGitRepo(ctx, worktreePath)
	if !ok {
		return nil, domain.NewRepositoryNotFoundError(worktreePath)
	}
	root, err := s.gitRepo.MainRepoRoot(ctx, worktreePath)
	if err != nil {
		return nil, err
	}

	var status *domain.WorktreeStatus
	err = s.locks.WithRead(root, func() error {
		count, err := s.gitRepo.CountChangedFiles(ctx, worktreePath)
		if err != nil {
			return err
		}
		status = &domain.WorktreeStatus{
			HasChanges:        count > 0,
			ChangedFilesCount: count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
