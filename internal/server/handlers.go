package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"arbor/internal/domain"
)

// CreateWorktreeRequest is the body for POST /api/v1/worktrees
type CreateWorktreeRequest struct {
	RepoPath   string `json:"repoPath"`
	BranchName string `json:"branchName"`
}

// DeleteWorktreeRequest is the body for DELETE /api/v1/worktrees
type DeleteWorktreeRequest struct {
	RepoPath     string `json:"repoPath"`
	WorktreePath string `json:"worktreePath"`
	DeleteBranch bool   `json:"deleteBranch"`
}

// CommitWorktreeRequest is the body for POST /api/v1/worktrees/commit
type CommitWorktreeRequest struct {
	WorktreePath string `json:"worktreePath"`
	Message      string `json:"message"`
}

// SwitchBranchRequest is the body for POST /api/v1/branches/switch
type SwitchBranchRequest struct {
	RepoPath   string `json:"repoPath"`
	BranchName string `json:"branchName"`
}

// AddFeatureRequest is the body for POST /api/v1/features
type AddFeatureRequest struct {
	Name        string   `json:"name"`
	BranchName  string   `json:"branchName"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Position    int      `json:"position,omitempty"`
	DependsOn   []string `json:"dependsOn,omitempty"`
	RepoPath    string   `json:"repoPath,omitempty"` // when set, also provision the worktree
}

// UpdateFeatureStatusRequest is the body for PUT /api/v1/features/:name/status
type UpdateFeatureStatusRequest struct {
	Status string `json:"status"`
}

// HealthResponse is the body for GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleCreateWorktree(c echo.Context) error {
	var req CreateWorktreeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	result, err := s.worktrees.Create(c.Request().Context(), req.RepoPath, req.BranchName)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (s *Server) handleListWorktrees(c echo.Context) error {
	repoPath := c.QueryParam("repoPath")
	includeStatus, _ := strconv.ParseBool(c.QueryParam("includeStatus"))

	worktrees, err := s.worktrees.List(c.Request().Context(), repoPath, includeStatus)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, map[string]any{"worktrees": worktrees})
}

func (s *Server) handleDeleteWorktree(c echo.Context) error {
	var req DeleteWorktreeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	err := s.worktrees.Delete(c.Request().Context(), req.RepoPath, req.WorktreePath, req.DeleteBranch)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, map[string]any{})
}

func (s *Server) handleWorktreeStatus(c echo.Context) error {
	status, err := s.worktrees.Status(c.Request().Context(), c.QueryParam("worktreePath"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, status)
}

func (s *Server) handleCommitWorktree(c echo.Context) error {
	var req CommitWorktreeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	result, err := s.commits.Commit(c.Request().Context(), req.WorktreePath, req.Message)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (s *Server) handleListBranches(c echo.Context) error {
	list, err := s.branches.ListBranches(c.Request().Context(), c.QueryParam("repoPath"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, list)
}

func (s *Server) handleSwitchBranch(c echo.Context) error {
	var req SwitchBranchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	result, err := s.branches.Switch(c.Request().Context(), req.RepoPath, req.BranchName)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (s *Server) handleListFeatures(c echo.Context) error {
	ctx := c.Request().Context()

	if orderedParam, _ := strconv.ParseBool(c.QueryParam("ordered")); orderedParam {
		features, err := s.features.ListOrdered(ctx)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, map[string]any{"features": features})
	}

	features, err := s.features.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, map[string]any{"features": features})
}

func (s *Server) handleAddFeature(c echo.Context) error {
	var req AddFeatureRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	feature, err := s.features.Add(c.Request().Context(), domain.Feature{
		Name:        req.Name,
		BranchName:  req.BranchName,
		Description: req.Description,
		Status:      req.Status,
		Position:    req.Position,
		DependsOn:   req.DependsOn,
	}, req.RepoPath)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, feature)
}

func (s *Server) handleUpdateFeatureStatus(c echo.Context) error {
	var req UpdateFeatureStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	err := s.features.UpdateStatus(c.Request().Context(), c.Param("name"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, map[string]any{})
}

func (s *Server) handleDeleteFeature(c echo.Context) error {
	if err := s.features.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return fail(c, err)
	}
	return ok(c, map[string]any{})
}

// ok writes a success envelope
func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, domain.OK(data))
}

// fail writes a failure envelope with a status derived from the error code
func fail(c echo.Context, err error) error {
	return c.JSON(statusFor(domain.CodeOf(err)), domain.Fail(err))
}

// badRequest reports an unparseable request body
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, domain.Fail(&domain.Error{
		Code:    domain.CodeValidation,
		Message: "invalid request body: " + err.Error(),
	}))
}

// statusFor maps operation error codes onto HTTP statuses
func statusFor(code string) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeRepositoryNotFound, domain.CodeBranchNotFound, domain.CodeFeatureNotFound:
		return http.StatusNotFound
	case domain.CodeUncommittedChanges, domain.CodeFeatureExists, domain.CodeDependencyCycle:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
