package cmd

// SwitchCmd switches the main checkout to an existing branch
type SwitchCmd struct {
	BranchName string `arg:"" optional:"" help:"Branch to switch to"`
	RepoPath   string `help:"Path to the repository" default:"."`
}

// Run executes the switch command
func (s *SwitchCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	result, err := cli.Container.BranchService.Switch(ctx, s.RepoPath, s.BranchName)
	return emit(result, err)
}

// BranchesCmd lists local branches
type BranchesCmd struct {
	RepoPath string `help:"Path to the repository" default:"."`
}

// Run executes the branches command
func (b *BranchesCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	branches, err := cli.Container.BranchService.ListBranches(ctx, b.RepoPath)
	return emit(branches, err)
}
