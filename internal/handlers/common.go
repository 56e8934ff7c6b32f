// internal/handlers/common.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// handleServiceError maps the shared service error taxonomy onto HTTP
// responses. resource is the i18n key prefix for not-found messages.
func handleServiceError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// currentUserID parses the authenticated user id out of the context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	roles, ok := utils.GetRolesFromContext(c)
	if !ok {
		return false
	}
	for _, r := range strings.Split(roles, ",") {
		if strings.TrimSpace(r) == models.RoleAdmin {
			return true
		}
	}
	return false
}

// parseQueryID reads a uuid query parameter without writing a
// response; form pages render their own error view.
func parseQueryID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseIDParam reads a uuid path parameter, responding 400 itself on
// bad input.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
