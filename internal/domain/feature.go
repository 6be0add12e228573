package domain

import (
	"fmt"
	"time"
)

// Feature statuses
const (
	FeatureStatusPlanned    = "planned"
	FeatureStatusInProgress = "in-progress"
	FeatureStatusDone       = "done"
)

// Feature is a persisted feature record. The worktree engine never
// interprets feature semantics; features reference worktrees by BranchName
// only, and worktree facts are joined in at read time.
type Feature struct {
	Name        string    `json:"name"`
	BranchName  string    `json:"branchName"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
	DependsOn   []string  `json:"dependsOn,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewFeatureExistsError reports a duplicate feature name
func NewFeatureExistsError(name string) *Error {
	return &Error{
		Code:    CodeFeatureExists,
		Message: fmt.Sprintf("feature %q already exists", name),
	}
}

// NewFeatureNotFoundError reports an unknown feature name
func NewFeatureNotFoundError(name string) *Error {
	return &Error{
		Code:    CodeFeatureNotFound,
		Message: fmt.Sprintf("feature %q not found", name),
	}
}

// NewDependencyCycleError reports a cycle in feature dependencies
func NewDependencyCycleError(names []string) *Error {
	return &Error{
		Code:    CodeDependencyCycle,
		Message: fmt.Sprintf("dependency cycle involving features %v", names),
	}
}
