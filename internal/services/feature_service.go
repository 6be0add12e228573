package services

import (
	"context"
	"sort"

	"arbor/internal/domain"
	"arbor/internal/logging"
	"arbor/internal/ports"
)

// FeatureService manages persisted feature records and their display
// ordering. The worktree engine stays feature-agnostic: features reference
// worktrees by branch name only, and worktree facts are joined in at read
// time rather than stored.
type FeatureService struct {
	features  ports.FeatureRepository
	worktrees *WorktreeService
}

// NewFeatureService creates a new FeatureService
func NewFeatureService(features ports.FeatureRepository, worktrees *WorktreeService) *FeatureService {
	return &FeatureService{
		features:  features,
		worktrees: worktrees,
	}
}

// Add persists a feature record. When repoPath is given, a worktree for the
// feature's branch is provisioned through the lifecycle manager; worktree
// creation failure rolls the record back so the store never references a
// branch that was refused.
func (s *FeatureService) Add(ctx context.Context, feature domain.Feature, repoPath string) (*domain.Feature, error) {
	if err := requireFields(
		field{"name", feature.Name},
		field{"branchName", feature.BranchName},
	); err != nil {
		return nil, err
	}
	if feature.Status == "" {
		feature.Status = domain.FeatureStatusPlanned
	}

	if err := s.features.Add(ctx, feature); err != nil {
		return nil, err
	}

	if repoPath != "" {
		if _, err := s.worktrees.Create(ctx, repoPath, feature.BranchName); err != nil {
			if delErr := s.features.Delete(ctx, feature.Name); delErr != nil {
				logging.Logger.Error("Failed to roll back feature record",
					"feature", feature.Name, "error", delErr)
			}
			return nil, err
		}
	}

	return s.features.Get(ctx, feature.Name)
}

// Get returns a feature by name
func (s *FeatureService) Get(ctx context.Context, name string) (*domain.Feature, error) {
	if err := requireFields(field{"name", name}); err != nil {
		return nil, err
	}
	return s.features.Get(ctx, name)
}

// List returns all features ordered by position then name
func (s *FeatureService) List(ctx context.Context) ([]domain.Feature, error) {
	return s.features.List(ctx)
}

// ListOrdered returns all features in dependency order: a feature always
// appears after everything it depends on. Ties break by position then name,
// so the order is deterministic. Dependencies on unknown features are
// ignored. A cycle fails with DEPENDENCY_CYCLE naming the involved
// features.
func (s *FeatureService) ListOrdered(ctx context.Context) ([]domain.Feature, error) {
	features, err := s.features.List(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]*domain.Feature, len(features))
	for i := range features {
		known[features[i].Name] = &features[i]
	}

	// Kahn's algorithm with a sorted ready list for stable output
	indegree := make(map[string]int, len(features))
	dependents := make(map[string][]string, len(features))
	for _, f := range features {
		for _, dep := range f.DependsOn {
			if _, ok := known[dep]; !ok {
				logging.Logger.Warn("Feature depends on unknown feature",
					"feature", f.Name, "dependsOn", dep)
				continue
			}
			indegree[f.Name]++
			dependents[dep] = append(dependents[dep], f.Name)
		}
	}

	ready := make([]string, 0, len(features))
	for _, f := range features {
		if indegree[f.Name] == 0 {
			ready = append(ready, f.Name)
		}
	}

	less := func(a, b string) bool {
		fa, fb := known[a], known[b]
		if fa.Position != fb.Position {
			return fa.Position < fb.Position
		}
		return fa.Name < fb.Name
	}

	ordered := make([]domain.Feature, 0, len(features))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })

		name := ready[0]
		ready = ready[1:]
		ordered = append(ordered, *known[name])

		for _, dependent := range dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(ordered) < len(features) {
		var cycle []string
		for _, f := range features {
			if indegree[f.Name] > 0 {
				cycle = append(cycle, f.Name)
			}
		}
		sort.Strings(cycle)
		return nil, domain.NewDependencyCycleError(cycle)
	}

	return ordered, nil
}

// UpdateStatus sets the status of a feature
func (s *FeatureService) UpdateStatus(ctx context.Context, name, status string) error {
	if err := requireFields(
		field{"name", name},
		field{"status", status},
	); err != nil {
		return err
	}
	return s.features.UpdateStatus(ctx, name, status)
}

// Delete removes a feature record. The feature's worktree is untouched;
// worktree deletion is an explicit, separate operation.
func (s *FeatureService) Delete(ctx context.Context, name string) error {
	if err := requireFields(field{"name", name}); err != nil {
		return err
	}
	return s.features.Delete(ctx, name)
}
