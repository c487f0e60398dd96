package repositories

import (
	"database/sql"
	"errors"

	"filemanager/internal/models"
)

type CodeRepository interface {
	Find(code string, userID int) (*models.ResetCode, error)
	Upsert(code string, userID int) error
	Delete(code string, userID int) error
}

type codeRepository struct {
	DB *sql.DB
}

func NewCodeRepository(db *sql.DB) CodeRepository {
	return &codeRepository{DB: db}
}

// Find returns (nil, nil) when the code does not match the user's
// active code.
func (r *codeRepository) Find(code string, userID int) (*models.ResetCode, error) {
	const q = `
		SELECT id, code, user_id
		FROM codes
		WHERE code = $1 AND user_id = $2
	`
	rc := &models.ResetCode{}
	err := r.DB.QueryRow(q, code, userID).Scan(&rc.ID, &rc.Code, &rc.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// Upsert keeps at most one active code per user: an existing row is
// updated in place, otherwise a new one is inserted. Concurrent requests
// race on the update and the last write wins, which is fine because only
// the most recent code should be valid.
func (r *codeRepository) Upsert(code string, userID int) error {
	res, err := r.DB.Exec(`UPDATE codes SET code = $1 WHERE user_id = $2`, code, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = r.DB.Exec(`INSERT INTO codes (code, user_id) VALUES ($1, $2)`, code, userID)
	return err
}

func (r *codeRepository) Delete(code string, userID int) error {
	_, err := r.DB.Exec(`DELETE FROM codes WHERE code = $1 AND user_id = $2`, code, userID)
	return err
}
