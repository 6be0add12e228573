package cmd

import (
	adaptergit "arbor/internal/adapters/git"
	adapterstorage "arbor/internal/adapters/storage"
	"arbor/internal/config"
	"arbor/internal/ports"
	"arbor/internal/repolock"
	"arbor/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	WorktreeService *services.WorktreeService
	BranchService   *services.BranchService
	CommitService   *services.CommitService
	FeatureService  *services.FeatureService

	// Internal - for cleanup only
	featureRepo ports.FeatureRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer() (*Container, error) {
	featureRepo, err := adapterstorage.NewSQLiteRepository(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	gitRepo := adaptergit.NewCLIRepository()
	locks := repolock.NewRegistry()

	worktreeService := services.NewWorktreeService(gitRepo, locks)
	branchService := services.NewBranchService(gitRepo, locks)
	commitService := services.NewCommitService(gitRepo, locks)
	featureService := services.NewFeatureService(featureRepo, worktreeService)

	return &Container{
		WorktreeService: worktreeService,
		BranchService:   branchService,
		CommitService:   commitService,
		FeatureService:  featureService,
		featureRepo:     featureRepo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.featureRepo != nil {
		return c.featureRepo.Close()
	}
	return nil
}
