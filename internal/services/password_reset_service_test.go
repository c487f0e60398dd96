package services

import (
	"errors"
	"testing"

	"filemanager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	createFunc         func(*models.User) error
	getByIDFunc        func(int) (*models.User, error)
	getByEmailFunc     func(string) (*models.User, error)
	updatePasswordFunc func(int, string) error
}

func (s *stubUserRepo) Create(u *models.User) error {
	if s.createFunc != nil {
		return s.createFunc(u)
	}
	return errors.New("not implemented")
}

func (s *stubUserRepo) GetByID(id int) (*models.User, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	if s.getByEmailFunc != nil {
		return s.getByEmailFunc(email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUserRepo) UpdatePassword(userID int, hash string) error {
	if s.updatePasswordFunc != nil {
		return s.updatePasswordFunc(userID, hash)
	}
	return errors.New("not implemented")
}

// memCodeRepo keeps at most one code per user, like the real table.
type memCodeRepo struct {
	codes map[int]string
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{codes: make(map[int]string)}
}

func (m *memCodeRepo) Find(code string, userID int) (*models.ResetCode, error) {
	if c, ok := m.codes[userID]; ok && c == code {
		return &models.ResetCode{ID: 1, Code: c, UserID: userID}, nil
	}
	return nil, nil
}

func (m *memCodeRepo) Upsert(code string, userID int) error {
	m.codes[userID] = code
	return nil
}

func (m *memCodeRepo) Delete(code string, userID int) error {
	if c, ok := m.codes[userID]; ok && c == code {
		delete(m.codes, userID)
	}
	return nil
}

type stubEmail struct {
	sendErr  error
	lastTo   string
	lastBody string
	sent     int
}

func (s *stubEmail) Send(to, subject, body string) error {
	s.sent++
	s.lastTo = to
	s.lastBody = body
	return s.sendErr
}

func (s *stubEmail) SendResetCodeEmail(to, code string) error {
	return s.Send(to, "Forgot password", "Your code is: "+code)
}

func (s *stubEmail) SendWelcomeEmail(to, name string) error {
	return s.Send(to, "Welcome", name)
}

func knownUser() *stubUserRepo {
	return &stubUserRepo{
		getByEmailFunc: func(email string) (*models.User, error) {
			if email == "a@x.com" {
				return &models.User{ID: 7, Email: "a@x.com", Name: "A", PasswordHash: "$2a$10$old"}, nil
			}
			return nil, nil
		},
	}
}

func TestRequestResetUnknownUser(t *testing.T) {
	svc := NewPasswordResetService(knownUser(), newMemCodeRepo(), &stubEmail{}, NewAuthService(testSecret))

	err := svc.RequestReset("nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestResetStoresCodeAndSendsEmail(t *testing.T) {
	codes := newMemCodeRepo()
	emails := &stubEmail{}
	svc := NewPasswordResetService(knownUser(), codes, emails, NewAuthService(testSecret))

	require.NoError(t, svc.RequestReset("a@x.com"))

	code, ok := codes.codes[7]
	require.True(t, ok)
	assert.Len(t, code, 4)
	assert.Equal(t, "a@x.com", emails.lastTo)
	assert.Contains(t, emails.lastBody, code)
}

func TestRequestResetReplacesPreviousCode(t *testing.T) {
	codes := newMemCodeRepo()
	svc := NewPasswordResetService(knownUser(), codes, &stubEmail{}, NewAuthService(testSecret))

	require.NoError(t, svc.RequestReset("a@x.com"))
	first := codes.codes[7]
	require.NoError(t, svc.RequestReset("a@x.com"))
	second := codes.codes[7]

	// one active code per user, the latest one
	assert.Len(t, codes.codes, 1)
	assert.Len(t, second, 4)
	_ = first // the values may collide, only the row count matters
}

func TestRequestResetEmailFailureIsSwallowed(t *testing.T) {
	codes := newMemCodeRepo()
	emails := &stubEmail{sendErr: errors.New("smtp down")}
	svc := NewPasswordResetService(knownUser(), codes, emails, NewAuthService(testSecret))

	// the code is persisted, so a failed send must not fail the request
	require.NoError(t, svc.RequestReset("a@x.com"))
	assert.NotEmpty(t, codes.codes[7])
}

func TestResetPasswordWrongCode(t *testing.T) {
	users := knownUser()
	updated := false
	users.updatePasswordFunc = func(int, string) error {
		updated = true
		return nil
	}
	codes := newMemCodeRepo()
	codes.codes[7] = "1234"
	svc := NewPasswordResetService(users, codes, &stubEmail{}, NewAuthService(testSecret))

	err := svc.ResetPassword("a@x.com", "9999", "newpw")
	assert.ErrorIs(t, err, ErrCodeNotFound)
	assert.False(t, updated, "password must stay unchanged on a wrong code")
	assert.Equal(t, "1234", codes.codes[7], "the active code stays valid")
}

func TestResetPasswordUnknownUser(t *testing.T) {
	svc := NewPasswordResetService(knownUser(), newMemCodeRepo(), &stubEmail{}, NewAuthService(testSecret))

	err := svc.ResetPassword("nobody@x.com", "1234", "newpw")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPasswordSuccessBurnsCode(t *testing.T) {
	auth := NewAuthService(testSecret)
	users := knownUser()
	var gotHash string
	users.updatePasswordFunc = func(userID int, hash string) error {
		require.Equal(t, 7, userID)
		gotHash = hash
		return nil
	}
	codes := newMemCodeRepo()
	codes.codes[7] = "1234"
	svc := NewPasswordResetService(users, codes, &stubEmail{}, auth)

	require.NoError(t, svc.ResetPassword("a@x.com", "1234", "newpw"))

	assert.True(t, auth.VerifyPassword("newpw", gotHash))
	_, stillThere := codes.codes[7]
	assert.False(t, stillThere, "a used code must be deleted")
}
