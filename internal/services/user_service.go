package services

import (
	"log"

	"filemanager/internal/models"
	"filemanager/internal/repositories"
)

type UserService interface {
	Register(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
}

type userService struct {
	repo   repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService) UserService {
	return &userService{
		repo:   repo,
		emails: emails,
		auth:   auth,
	}
}

func (s *userService) Register(email, password, name string) (*models.User, error) {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, Name: name, PasswordHash: hash}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emails != nil {
		// warn but do not fail the registration
		if err := s.emails.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("[users][register] failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}
