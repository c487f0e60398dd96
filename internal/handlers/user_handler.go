package handlers

import (
	"log"
	"net/http"
	"strconv"

	"filemanager/internal/middleware"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// @Summary      Fetch a user by id
// @Description  Only the token's own subject may be fetched.
// @Tags         Users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Security     BearerAuth
// @Success      200  {object}  models.Response
// @Failure      401  {object}  models.Response
// @Failure      403  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /user/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Printf("[users][get] id=%d: %v", id, err)
		respond(c, http.StatusInternalServerError, "Server error", nil)
		return
	}
	if user == nil {
		respond(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if user.ID != caller.ID {
		respond(c, http.StatusForbidden, "Forbidden", nil)
		return
	}

	respond(c, http.StatusOK, "User fetched successfully", user)
}
