package domain

// Worktree describes one working directory of a repository. Exactly one
// entry per repository has IsMain set: the primary checkout. Status fields
// are recomputed on every read and never persisted.
type Worktree struct {
	BranchName        string `json:"branchName"`
	Path              string `json:"path"`
	IsMain            bool   `json:"isMain"`
	HasChanges        bool   `json:"hasChanges"`
	ChangedFilesCount int    `json:"changedFilesCount"`
}

// WorktreeRef is one entry of the repository's worktree inventory as
// reported by the external tool. The first entry is always the main
// working directory.
type WorktreeRef struct {
	Path     string
	Branch   string // short name, empty when detached
	Head     string
	IsMain   bool
	Detached bool
}

// BranchInfo describes a local branch ref
type BranchInfo struct {
	Name      string `json:"name"`
	IsCurrent bool   `json:"isCurrent"`
}

// BranchList is the result of listing a repository's local branches
type BranchList struct {
	CurrentBranch string       `json:"currentBranch"`
	Branches      []BranchInfo `json:"branches"`
}

// CreateResult is the result of a worktree create call. IsNew is false when
// a worktree for the branch already existed and no mutation occurred.
type CreateResult struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
	IsNew  bool   `json:"isNew"`
}

// CommitResult is the result of a stage-and-commit call. CommitHash, when
// set, is always exactly 8 lowercase hex characters.
type CommitResult struct {
	Committed  bool   `json:"committed"`
	Branch     string `json:"branch,omitempty"`
	CommitHash string `json:"commitHash,omitempty"`
	Message    string `json:"message,omitempty"`
}

// SwitchResult is the result of a branch switch
type SwitchResult struct {
	PreviousBranch string `json:"previousBranch"`
	CurrentBranch  string `json:"currentBranch"`
	Message        string `json:"message"`
}

// WorktreeStatus is the result of a status inspection
type WorktreeStatus struct {
	HasChanges        bool `json:"hasChanges"`
	ChangedFilesCount int  `json:"changedFilesCount"`
}
