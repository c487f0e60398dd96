package repositories

import (
	"database/sql"
	"errors"

	"filemanager/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(userID int, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRow(q, user.Email, user.PasswordHash, user.Name).Scan(&user.ID)
}

// GetByID returns (nil, nil) when no such user exists.
func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, email, password, name
		FROM users
		WHERE id = $1
	`
	u := &models.User{}
	err := r.DB.QueryRow(q, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail returns (nil, nil) when no such user exists. Emails are
// matched exactly as stored.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, email, password, name
		FROM users
		WHERE email = $1
	`
	u := &models.User{}
	err := r.DB.QueryRow(q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	const q = `
		UPDATE users
		SET password = $1
		WHERE id = $2
	`
	_, err := r.DB.Exec(q, passwordHash, userID)
	return err
}
