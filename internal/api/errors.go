package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablero-dev/tablero/internal/services/label"
	"github.com/tablero-dev/tablero/internal/services/project"
	"github.com/tablero-dev/tablero/internal/services/workflow"
	"github.com/tablero-dev/tablero/internal/services/workspace"
)

// Error kinds reported to callers. Machine-readable; the message carries
// the human detail.
const (
	KindValidation   = "VALIDATION"
	KindNotFound     = "NOT_FOUND"
	KindUnauthorized = "UNAUTHORIZED"
	KindBadRequest   = "BAD_REQUEST"
	KindInternal     = "INTERNAL"
)

// ErrorBody is the error envelope returned by every failing endpoint.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable kind and a short message.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorMapping pairs a sentinel error with its HTTP representation.
type errorMapping struct {
	err    error
	status int
	kind   string
}

var errorMappings = []errorMapping{
	// Not found
	{project.ErrProjectNotFound, http.StatusNotFound, KindNotFound},
	{project.ErrWorkspaceNotFound, http.StatusNotFound, KindNotFound},
	{workspace.ErrWorkspaceNotFound, http.StatusNotFound, KindNotFound},
	{label.ErrLabelNotFound, http.StatusNotFound, KindNotFound},
	{workflow.ErrWorkflowNotFound, http.StatusNotFound, KindNotFound},

	// Ownership / membership checks
	{project.ErrUnauthorized, http.StatusForbidden, KindUnauthorized},
	{project.ErrNotProjectMember, http.StatusForbidden, KindUnauthorized},
	{project.ErrNotWorkspaceMember, http.StatusForbidden, KindUnauthorized},
	{workspace.ErrCannotRemoveCreator, http.StatusForbidden, KindUnauthorized},

	// Coarse delete-project wrapping (original cause already discarded)
	{project.ErrBadRequest, http.StatusBadRequest, KindBadRequest},

	// Conflicts and business rules
	{project.ErrWorkspaceMismatch, http.StatusBadRequest, KindBadRequest},
	{workspace.ErrShortNameTaken, http.StatusBadRequest, KindBadRequest},
	{workflow.ErrWorkflowHasIssues, http.StatusBadRequest, KindBadRequest},

	// Input validation, rejected before any store access
	{project.ErrInvalidProjectID, http.StatusUnprocessableEntity, KindValidation},
	{project.ErrEmptyName, http.StatusUnprocessableEntity, KindValidation},
	{project.ErrNameTooLong, http.StatusUnprocessableEntity, KindValidation},
	{project.ErrInvalidProjectType, http.StatusUnprocessableEntity, KindValidation},
	{project.ErrEmptyShortName, http.StatusUnprocessableEntity, KindValidation},
	{project.ErrInvalidUserID, http.StatusUnprocessableEntity, KindValidation},
	{label.ErrTitleTooShort, http.StatusUnprocessableEntity, KindValidation},
	{label.ErrTitleTooLong, http.StatusUnprocessableEntity, KindValidation},
	{label.ErrInvalidColor, http.StatusUnprocessableEntity, KindValidation},
	{label.ErrInvalidLabelID, http.StatusUnprocessableEntity, KindValidation},
	{label.ErrInvalidProjectID, http.StatusUnprocessableEntity, KindValidation},
	{workflow.ErrEmptyTitle, http.StatusUnprocessableEntity, KindValidation},
	{workflow.ErrTitleTooLong, http.StatusUnprocessableEntity, KindValidation},
	{workflow.ErrInvalidWorkflowID, http.StatusUnprocessableEntity, KindValidation},
	{workflow.ErrInvalidProjectID, http.StatusUnprocessableEntity, KindValidation},
	{workspace.ErrEmptyShortName, http.StatusUnprocessableEntity, KindValidation},
	{workspace.ErrEmptyName, http.StatusUnprocessableEntity, KindValidation},
	{workspace.ErrInvalidUserID, http.StatusUnprocessableEntity, KindValidation},
}

// serviceError converts a service-layer error into the JSON error
// envelope. Unrecognized errors become 500 INTERNAL with a generic
// message so store details never leak to callers.
func (s *Server) serviceError(c echo.Context, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.JSON(m.status, ErrorBody{Error: ErrorDetail{
				Kind:    m.kind,
				Message: m.err.Error(),
			}})
		}
	}

	s.logger.Error("internal error", "error", err,
		"uri", c.Request().RequestURI)
	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: ErrorDetail{
		Kind:    KindInternal,
		Message: "internal error",
	}})
}

// bindError reports a malformed request body.
func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
		Kind:    KindBadRequest,
		Message: "invalid request body",
	}})
}
