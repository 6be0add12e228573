package cmd

import (
	"arbor/internal/domain"
)

// FeaturesCmd manages features
type FeaturesCmd struct {
	Add    FeaturesAddCmd    `cmd:"add" help:"Add a new feature"`
	List   FeaturesListCmd   `cmd:"list" help:"List features" default:"1"`
	Del    FeaturesDelCmd    `cmd:"del" help:"Delete a feature"`
	Status FeaturesStatusCmd `cmd:"status" help:"Update a feature's status"`
}

// FeaturesAddCmd adds a new feature
type FeaturesAddCmd struct {
	Name        string   `arg:"" optional:"" help:"Name of the feature to add"`
	BranchName  string   `help:"Branch the feature is developed on" default:""`
	Description string   `help:"Feature description" default:""`
	Status      string   `help:"Initial status" enum:"planned,in-progress,done" default:"planned"`
	Position    int      `help:"Ordering position within the plan" default:"0"`
	DependsOn   []string `help:"Features this one depends on"`
	RepoPath    string   `help:"Repository to provision a worktree in (skips provisioning when empty)" default:""`
}

// Run executes the add command
func (f *FeaturesAddCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	feature := domain.Feature{
		Name:        f.Name,
		BranchName:  f.BranchName,
		Description: f.Description,
		Status:      f.Status,
		Position:    f.Position,
		DependsOn:   f.DependsOn,
	}

	result, err := cli.Container.FeatureService.Add(ctx, feature, f.RepoPath)
	return emit(result, err)
}

// FeaturesListCmd lists features
type FeaturesListCmd struct {
	Ordered bool `help:"Order by dependencies (topological order)"`
}

// Run executes the list command
func (f *FeaturesListCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	var (
		features []domain.Feature
		err      error
	)
	if f.Ordered {
		features, err = cli.Container.FeatureService.ListOrdered(ctx)
	} else {
		features, err = cli.Container.FeatureService.List(ctx)
	}
	return emit(map[string]any{"features": features}, err)
}

// FeaturesDelCmd deletes a feature
type FeaturesDelCmd struct {
	Name string `arg:"" optional:"" help:"Name of the feature to delete"`
}

// Run executes the del command
func (f *FeaturesDelCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	err := cli.Container.FeatureService.Delete(ctx, f.Name)
	return emit(map[string]any{}, err)
}

// FeaturesStatusCmd updates a feature's status
type FeaturesStatusCmd struct {
	Name   string `arg:"" optional:"" help:"Name of the feature"`
	Status string `arg:"" optional:"" help:"New status" enum:"planned,in-progress,done,"`
}

// Run executes the status command
func (f *FeaturesStatusCmd) Run(cli *CLI) error {
	ctx, cancel := cli.commandContext()
	defer cancel()

	err := cli.Container.FeatureService.UpdateStatus(ctx, f.Name, f.Status)
	return emit(map[string]any{}, err)
}
