package services

import (
	"log"

	"filemanager/internal/repositories"
)

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(email, code, newPassword string) error
}

type passwordResetService struct {
	users  repositories.UserRepository
	codes  repositories.CodeRepository
	emails EmailService
	auth   AuthService
}

func NewPasswordResetService(users repositories.UserRepository, codes repositories.CodeRepository, emails EmailService, auth AuthService) PasswordResetService {
	return &passwordResetService{
		users:  users,
		codes:  codes,
		emails: emails,
		auth:   auth,
	}
}

// RequestReset persists a fresh code for the user (replacing any previous
// one) and mails it. A failed send is logged, never surfaced: the code is
// already stored and the user can retry through another channel.
func (s *passwordResetService) RequestReset(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, err := s.auth.GenerateResetCode()
	if err != nil {
		return err
	}
	if err := s.codes.Upsert(code, user.ID); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendResetCodeEmail(user.Email, code); err != nil {
			log.Printf("[password-reset] failed to send code to %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *passwordResetService) ResetPassword(email, code, newPassword string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	rc, err := s.codes.Find(code, user.ID)
	if err != nil {
		return err
	}
	if rc == nil {
		return ErrCodeNotFound
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	updateErr := s.users.UpdatePassword(user.ID, hash)

	// codes are single-use: burn it even when the update failed, a stale
	// code must not stay valid
	if err := s.codes.Delete(rc.Code, user.ID); err != nil {
		log.Printf("[password-reset] failed to delete code for user %d: %v", user.ID, err)
	}
	return updateErr
}
