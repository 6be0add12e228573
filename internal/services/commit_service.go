package services

import (
	"context"

	"arbor/internal/domain"
	"arbor/internal/logging"
	"arbor/internal/ports"
	"arbor/internal/repolock"
)

// CommitService stages and commits changes in a worktree with no-op
// detection
type CommitService struct {
	gitRepo ports.GitRepository
	locks   *repolock.Registry
}

// NewCommitService creates a new CommitService
func NewCommitService(gitRepo ports.GitRepository, locks *repolock.Registry) *CommitService {
	return &CommitService{
		gitRepo: gitRepo,
		locks:   locks,
	}
}

// Commit stages all pending modifications and untracked files in the
// worktree and records them with the given message.
//
// A clean tree yields {committed:false, "No changes to commit"}, which is a
// successful response. Each call commits only the delta since the previous
// commit. Linked worktrees share the repository's metadata store, so the
// write lock keys on the main repository root.
func (s *CommitService) Commit(ctx context.Context, worktreePath, message string) (*domain.CommitResult, error) {
	if err := requireFields(
		field{"worktreePath", worktreePath},
		field{"message", message},
	); err != nil {
		return nil, err
	}

	ok, wtRoot := s.gitRepo.IsGitRepo(ctx, worktreePath)
	if !ok {
		return nil, domain.NewRepositoryNotFoundError(worktreePath)
	}
	mainRoot, err := s.gitRepo.MainRepoRoot(ctx, wtRoot)
	if err != nil {
		return nil, err
	}

	var result *domain.CommitResult
	err = s.locks.WithWrite(mainRoot, func() error {
		if err := s.gitRepo.StageAll(ctx, wtRoot); err != nil {
			return err
		}

		changed, err := s.gitRepo.CountChangedFiles(ctx, wtRoot)
		if err != nil {
			return err
		}
		if changed == 0 {
			result = &domain.CommitResult{
				Committed: false,
				Message:   "No changes to commit",
			}
			return nil
		}

		if err := s.gitRepo.Commit(ctx, wtRoot, message); err != nil {
			return err
		}

		branch, err := s.gitRepo.CurrentBranch(ctx, wtRoot)
		if err != nil {
			return err
		}
		hash, err := s.gitRepo.HeadHash(ctx, wtRoot)
		if err != nil {
			return err
		}

		logging.Logger.Info("Committed changes",
			"worktree", wtRoot, "branch", branch, "hash", hash, "files", changed)
		result = &domain.CommitResult{
			Committed:  true,
			Branch:     branch,
			CommitHash: hash,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
