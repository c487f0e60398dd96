package handlers

import (
	"errors"
	"log"
	"net/http"

	"filemanager/internal/models"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users  services.UserService
	auth   services.AuthService
	resets services.PasswordResetService
}

func NewAuthHandler(users services.UserService, auth services.AuthService, resets services.PasswordResetService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, resets: resets}
}

// @Summary      Register a new user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      500  {object}  models.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.Password == "" || req.Email == "" || req.Name == "" {
		respond(c, http.StatusBadRequest, "Password, email and name cannot be empty", nil)
		return
	}

	log.Printf("[auth][register] email=%q name=%q", req.Email, req.Name)
	user, err := h.users.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			respond(c, http.StatusBadRequest, "User is already registered", nil)
			return
		}
		log.Printf("[auth][register] failed for %q: %v", req.Email, err)
		respond(c, http.StatusInternalServerError, "Server error", nil)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", gin.H{"user_id": user.ID})
}

// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200  {object}  models.Response
// @Failure      401  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Failure      500  {object}  models.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("[auth][login] lookup failed for %q: %v", req.Email, err)
		respond(c, http.StatusInternalServerError, "Server error", nil)
		return
	}
	if user == nil {
		respond(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if !h.auth.VerifyPassword(req.Password, user.PasswordHash) {
		respond(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, err := h.auth.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[auth][login] sign token failed for userID=%d: %v", user.ID, err)
		respond(c, http.StatusInternalServerError, "Server error", nil)
		return
	}

	respond(c, http.StatusOK, "Successful authorization", gin.H{"token": token})
}

// @Summary      Request a password-reset code
// @Description  The address may arrive in the JSON body or as the email query parameter.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      models.ForgotPasswordRequest  false  "Account email"
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Failure      500  {object}  models.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	_ = c.ShouldBindJSON(&req) // body is optional, the query parameter also works
	if req.Email == "" {
		req.Email = c.Query("email")
	}
	if req.Email == "" {
		respond(c, http.StatusBadRequest, "Email cannot be empty", nil)
		return
	}

	if err := h.resets.RequestReset(req.Email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}
		log.Printf("[auth][forgot-password] failed for %q: %v", req.Email, err)
		respond(c, http.StatusInternalServerError, "Server error", nil)
		return
	}

	respond(c, http.StatusOK, "Email sent successfully", nil)
}

// @Summary      Reset the password with an emailed code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      models.ResetPasswordRequest  true  "Email, code and new password"
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Failure      500  {object}  models.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		respond(c, http.StatusBadRequest, "Email, code and password cannot be empty", nil)
		return
	}

	if err := h.resets.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			respond(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, services.ErrCodeNotFound):
			respond(c, http.StatusNotFound, "Code not found", nil)
		default:
			log.Printf("[auth][reset-password] failed for %q: %v", req.Email, err)
			respond(c, http.StatusInternalServerError, "Server error", nil)
		}
		return
	}

	respond(c, http.StatusOK, "Password reset successfully", nil)
}
