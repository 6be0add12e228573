package services

import (
	"context"
	"fmt"

	"arbor/internal/domain"
	"arbor/internal/logging"
	"arbor/internal/ports"
	"arbor/internal/repolock"
)

// BranchService lists branches and performs guarded branch switches
type BranchService struct {
	gitRepo ports.GitRepository
	locks   *repolock.Registry
}

// NewBranchService creates a new BranchService
func NewBranchService(gitRepo ports.GitRepository, locks *repolock.Registry) *BranchService {
	return &BranchService{
		gitRepo: gitRepo,
		locks:   locks,
	}
}

// Switch checks out branchName in the working tree at repoPath.
//
// The check order is a contract:
//  1. branchName must exist as a local branch (BRANCH_NOT_FOUND otherwise)
//  2. switching to the current branch succeeds immediately, regardless of
//     tree state, since no checkout is required
//  3. a dirty tree blocks the switch (UNCOMMITTED_CHANGES), mutating nothing
//  4. a clean tree is checked out; the switch either fully completes or
//     leaves the tree untouched
func (s *BranchService) Switch(ctx context.Context, repoPath, branchName string) (*domain.SwitchResult, error) {
	if err := requireFields(
		field{"repoPath", repoPath},
		field{"branchName", branchName},
	); err != nil {
		return nil, err
	}

	ok, root := s.gitRepo.IsGitRepo(ctx, repoPath)
	if !ok {
		return nil, domain.NewRepositoryNotFoundError(repoPath)
	}
	mainRoot, err := s.gitRepo.MainRepoRoot(ctx, root)
	if err != nil {
		return nil, err
	}

	var result *domain.SwitchResult
	err = s.locks.WithWrite(mainRoot, func() error {
		list, err := s.gitRepo.ListBranches(ctx, root)
		if err != nil {
			return err
		}

		exists := false
		for _, b := range list.Branches {
			if b.Name == branchName {
				exists = true
				break
			}
		}
		if !exists {
			return domain.NewBranchNotFoundError(branchName)
		}

		current := list.CurrentBranch
		if current == branchName {
			result = &domain.SwitchResult{
				PreviousBranch: current,
				CurrentBranch:  current,
				Message:        fmt.Sprintf("Already on branch %s", current),
			}
			return nil
		}

		changed, err := s.gitRepo.CountChangedFiles(ctx, root)
		if err != nil {
			return err
		}
		if changed > 0 {
			return domain.NewUncommittedChangesError(current, changed)
		}

		if err := s.gitRepo.Checkout(ctx, root, branchName); err != nil {
			return err
		}

		logging.Logger.Info("Switched branch",
			"root", root, "from", current, "to", branchName)
		result = &domain.SwitchResult{
			PreviousBranch: current,
			CurrentBranch:  branchName,
			Message:        fmt.Sprintf("Switched to branch %s", branchName),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListBranches returns the repository's local branches with the current one
// marked
func (s *BranchService) ListBranches(ctx context.Context, repoPath string) (*domain.BranchList, error) {
	if err := requireFields(field{"repoPath", repoPath}); err != nil {
		return nil, err
	}

	ok, root := s.gitRepo.IsGitRepo(ctx, repoPath)
	if !ok {
		return nil, domain.NewRepositoryNotFoundError(repoPath)
	}
	mainRoot, err := s.gitRepo.MainRepoRoot(ctx, root)
	if err != nil {
		return nil, err
	}

	var list *domain.BranchList
	err = s.locks.WithRead(mainRoot, func() error {
		list, err = s.gitRepo.ListBranches(ctx, root)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
