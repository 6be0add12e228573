package cmd

// CreateCmd creates a worktree for a branch
type CreateCmd struct {
	BranchName string `arg:"" optional:"" help:"Branch to create the worktree for"`
	RepoPath   string `help:"Path to the repository" default:"."`
}

// Run executes the create command
func (c *CreateCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	result, err := cli.Container.WorktreeService.Create(ctx, c.RepoPath, c.BranchName)
	return emit(result, err)
}

// DeleteCmd removes a worktree
type DeleteCmd struct {
	WorktreePath string `arg:"" optional:"" help:"Path of the worktree to remove"`
	RepoPath     string `help:"Path to the repository" default:"."`
	DeleteBranch bool   `help:"Also delete the worktree's branch"`
}

// Run executes the delete command
func (d *DeleteCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	err := cli.Container.WorktreeService.Delete(ctx, d.RepoPath, d.WorktreePath, d.DeleteBranch)
	return emit(map[string]any{}, err)
}

// ListCmd lists worktrees
type ListCmd struct {
	RepoPath string `help:"Path to the repository" default:"."`
	Status   bool   `help:"Include uncommitted-change counts (runs git status per worktree)"`
}

// Run executes the list command
func (l *ListCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	worktrees, err := cli.Container.WorktreeService.List(ctx, l.RepoPath, l.Status)
	return emit(map[string]any{"worktrees": worktrees}, err)
}

// StatusCmd shows uncommitted-change status for a single worktree
type StatusCmd struct {
	WorktreePath string `arg:"" optional:"" help:"Path of the worktree to inspect"`
}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	status, err := cli.Container.WorktreeService.Status(ctx, s.WorktreePath)
	return emit(status, err)
}
