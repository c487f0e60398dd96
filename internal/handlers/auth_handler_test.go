package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"filemanager/internal/models"
	"filemanager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	registerFunc   func(email, password, name string) (*models.User, error)
	getByEmailFunc func(email string) (*models.User, error)
	getByIDFunc    func(id int) (*models.User, error)
}

func (s *stubUserService) Register(email, password, name string) (*models.User, error) {
	if s.registerFunc != nil {
		return s.registerFunc(email, password, name)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUserService) GetUserByEmail(email string) (*models.User, error) {
	if s.getByEmailFunc != nil {
		return s.getByEmailFunc(email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUserService) GetUserByID(id int) (*models.User, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

type stubAuthService struct {
	verifyPasswordFunc func(password, hash string) bool
	generateTokenFunc  func(userID int) (string, error)
}

func (s *stubAuthService) HashPassword(string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAuthService) VerifyPassword(password, hash string) bool {
	if s.verifyPasswordFunc != nil {
		return s.verifyPasswordFunc(password, hash)
	}
	return false
}

func (s *stubAuthService) GenerateToken(userID int) (string, error) {
	if s.generateTokenFunc != nil {
		return s.generateTokenFunc(userID)
	}
	return "", errors.New("not implemented")
}

func (s *stubAuthService) VerifyToken(string) (int, error) {
	return 0, errors.New("not implemented")
}

func (s *stubAuthService) GenerateResetCode() (string, error) {
	return "", errors.New("not implemented")
}

type stubResetService struct {
	requestFunc func(email string) error
	resetFunc   func(email, code, newPassword string) error
}

func (s *stubResetService) RequestReset(email string) error {
	if s.requestFunc != nil {
		return s.requestFunc(email)
	}
	return errors.New("not implemented")
}

func (s *stubResetService) ResetPassword(email, code, newPassword string) error {
	if s.resetFunc != nil {
		return s.resetFunc(email, code, newPassword)
	}
	return errors.New("not implemented")
}

func newAuthRouter(users *stubUserService, auth *stubAuthService, resets *stubResetService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(users, auth, resets)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, models.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestRegisterEmptyFields(t *testing.T) {
	r := newAuthRouter(&stubUserService{}, &stubAuthService{}, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/register", gin.H{"email": "a@x.com", "password": "", "name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Password, email and name cannot be empty", resp.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &stubUserService{
		registerFunc: func(string, string, string) (*models.User, error) {
			return nil, services.ErrDuplicateEmail
		},
	}
	r := newAuthRouter(users, &stubAuthService{}, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/register", gin.H{"email": "a@x.com", "password": "pw", "name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User is already registered", resp.Message)
}

func TestRegisterSuccess(t *testing.T) {
	users := &stubUserService{
		registerFunc: func(email, password, name string) (*models.User, error) {
			return &models.User{ID: 7, Email: email, Name: name}, nil
		},
	}
	r := newAuthRouter(users, &stubAuthService{}, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/register", gin.H{"email": "a@x.com", "password": "pw", "name": "A"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["user_id"])
}

func TestLoginUnknownUser(t *testing.T) {
	users := &stubUserService{
		getByEmailFunc: func(string) (*models.User, error) { return nil, nil },
	}
	r := newAuthRouter(users, &stubAuthService{}, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/login", gin.H{"email": "nobody@x.com", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", resp.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &stubUserService{
		getByEmailFunc: func(string) (*models.User, error) {
			return &models.User{ID: 7, Email: "a@x.com", PasswordHash: "$2a$10$hash"}, nil
		},
	}
	auth := &stubAuthService{
		verifyPasswordFunc: func(string, string) bool { return false },
	}
	r := newAuthRouter(users, auth, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/login", gin.H{"email": "a@x.com", "password": "wrong"})
	// wrong password is unauthorized, never not-found
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", resp.Message)
}

func TestLoginSuccess(t *testing.T) {
	users := &stubUserService{
		getByEmailFunc: func(string) (*models.User, error) {
			return &models.User{ID: 7, Email: "a@x.com", PasswordHash: "$2a$10$hash"}, nil
		},
	}
	auth := &stubAuthService{
		verifyPasswordFunc: func(string, string) bool { return true },
		generateTokenFunc:  func(userID int) (string, error) { return "signed-token", nil },
	}
	r := newAuthRouter(users, auth, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/login", gin.H{"email": "a@x.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successful authorization", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "signed-token", data["token"])
}

func TestForgotPasswordEmptyEmail(t *testing.T) {
	r := newAuthRouter(&stubUserService{}, &stubAuthService{}, &stubResetService{})

	w, resp := postJSON(t, r, "/auth/forgot-password", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email cannot be empty", resp.Message)
}

func TestForgotPasswordQueryParam(t *testing.T) {
	var got string
	resets := &stubResetService{
		requestFunc: func(email string) error {
			got = email
			return nil
		},
	}
	r := newAuthRouter(&stubUserService{}, &stubAuthService{}, resets)

	w, resp := postJSON(t, r, "/auth/forgot-password?email=a@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email sent successfully", resp.Message)
	assert.Equal(t, "a@x.com", got)
}

func TestResetPasswordCodeNotFound(t *testing.T) {
	resets := &stubResetService{
		resetFunc: func(string, string, string) error { return services.ErrCodeNotFound },
	}
	r := newAuthRouter(&stubUserService{}, &stubAuthService{}, resets)

	w, resp := postJSON(t, r, "/auth/reset-password", gin.H{
		"email": "a@x.com", "code": "9999", "new_password": "newpw",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Code not found", resp.Message)
}

func TestResetPasswordSuccess(t *testing.T) {
	resets := &stubResetService{
		resetFunc: func(email, code, newPassword string) error { return nil },
	}
	r := newAuthRouter(&stubUserService{}, &stubAuthService{}, resets)

	w, resp := postJSON(t, r, "/auth/reset-password", gin.H{
		"email": "a@x.com", "code": "1234", "new_password": "newpw",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Password reset successfully", resp.Message)
}
