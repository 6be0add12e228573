package cmd

// CommitCmd stages and commits all changes in a worktree
type CommitCmd struct {
	WorktreePath string `arg:"" optional:"" help:"Path of the worktree to commit in"`
	Message      string `help:"Commit message" short:"m"`
}

// Run executes the commit command
func (c *CommitCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	result, err := cli.Container.CommitService.Commit(ctx, c.WorktreePath, c.Message)
	return emit(result, err)
}
