package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twiga.app/backend/internal/http/dto"
	"twiga.app/backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByWaID(c.Request.Context(), c.Param("wa_id"))
	if err != nil {
		respondError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("wa_id"), service.UpdateUserParams{
		Name:  req.Name,
		State: req.State,
	})
	if err != nil {
		respondError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// AssignClasses replaces the classes a teacher teaches.
func (h *UserHandler) AssignClasses(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AssignClassesRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.GetByWaID(ctx, c.Param("wa_id"))
	if err != nil {
		respondError(c, err, "get user")
		return
	}

	ids, err := h.userService.AssignClasses(ctx, user, req.ClassInfo, req.SubjectID)
	if err != nil {
		respondError(c, err, "assign classes")
		return
	}

	c.JSON(http.StatusOK, dto.AssignClassesResponse{
		ClassIDs: ids,
		Classes:  user.TaughtClasses,
	})
}
