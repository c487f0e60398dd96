package repositories

import (
	"database/sql"
	"errors"

	"filemanager/internal/models"

	"github.com/lib/pq"
)

type FileRepository interface {
	Create(file *models.StoredFile) error
	GetByID(id int) (*models.StoredFile, error)
	ListByOwner(userID int) ([]models.StoredFile, error)
	ListByIDs(ids []int) ([]models.StoredFile, error)
	ListByIDsOwned(ids []int, userID int) ([]models.StoredFile, error)
	Delete(id int) error
}

type fileRepository struct {
	DB *sql.DB
}

func NewFileRepository(db *sql.DB) FileRepository {
	return &fileRepository{DB: db}
}

func (r *fileRepository) Create(f *models.StoredFile) error {
	const q = `
		INSERT INTO files (file_name, file_path, file_size, file_content_type, file_type, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRow(q,
		f.FileName,
		f.FilePath,
		f.FileSize,
		f.ContentType,
		f.FileType,
		f.UserID,
	).Scan(&f.ID)
}

// GetByID returns (nil, nil) when no metadata row exists.
func (r *fileRepository) GetByID(id int) (*models.StoredFile, error) {
	const q = `
		SELECT id, file_name, file_path, file_size, file_content_type, file_type, user_id
		FROM files
		WHERE id = $1
	`
	f := &models.StoredFile{}
	err := r.DB.QueryRow(q, id).Scan(
		&f.ID, &f.FileName, &f.FilePath, &f.FileSize, &f.ContentType, &f.FileType, &f.UserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fileRepository) ListByOwner(userID int) ([]models.StoredFile, error) {
	const q = `
		SELECT id, file_name, file_path, file_size, file_content_type, file_type, user_id
		FROM files
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, err
	}
	return scanFiles(rows)
}

func (r *fileRepository) ListByIDs(ids []int) ([]models.StoredFile, error) {
	const q = `
		SELECT id, file_name, file_path, file_size, file_content_type, file_type, user_id
		FROM files
		WHERE id = ANY($1)
		ORDER BY id
	`
	rows, err := r.DB.Query(q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanFiles(rows)
}

func (r *fileRepository) ListByIDsOwned(ids []int, userID int) ([]models.StoredFile, error) {
	const q = `
		SELECT id, file_name, file_path, file_size, file_content_type, file_type, user_id
		FROM files
		WHERE id = ANY($1) AND user_id = $2
		ORDER BY id
	`
	rows, err := r.DB.Query(q, pq.Array(ids), userID)
	if err != nil {
		return nil, err
	}
	return scanFiles(rows)
}

func (r *fileRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM files WHERE id = $1`, id)
	return err
}

func scanFiles(rows *sql.Rows) ([]models.StoredFile, error) {
	defer rows.Close()

	var res []models.StoredFile
	for rows.Next() {
		var f models.StoredFile
		if err := rows.Scan(
			&f.ID, &f.FileName, &f.FilePath, &f.FileSize, &f.ContentType, &f.FileType, &f.UserID,
		); err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, rows.Err()
}
