package services

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"filemanager/internal/models"
	"filemanager/internal/repositories"
)

type FileService interface {
	Upload(userID int, fileName, contentType string, body io.Reader) (int, error)
	List(userID int, fileIDs []int) ([]models.StoredFile, error)
	Delete(userID, fileID int) error
}

type fileService struct {
	repo        repositories.FileRepository
	rootDir     string
	ownerScoped bool
}

func NewFileService(repo repositories.FileRepository, rootDir string, ownerScoped bool) FileService {
	return &fileService{
		repo:        repo,
		rootDir:     rootDir,
		ownerScoped: ownerScoped,
	}
}

// Upload writes the payload under the upload root, then records its
// metadata. Stored names are flattened with filepath.Base, so two uploads
// with the same filename overwrite each other (last write wins). If the
// metadata insert fails after the write, the blob is unreachable and gets
// removed best-effort.
func (s *fileService) Upload(userID int, fileName, contentType string, body io.Reader) (int, error) {
	if fileName == "" {
		fileName = "unknown"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileType := "unknown"
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		fileType = fileName[i+1:]
	}

	path := filepath.Join(s.rootDir, filepath.Base(fileName))
	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	size, err := io.Copy(dst, body)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}

	file := &models.StoredFile{
		FileName:    fileName,
		FilePath:    path,
		FileSize:    size,
		ContentType: contentType,
		FileType:    fileType,
		UserID:      userID,
	}
	if err := s.repo.Create(file); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("[files][upload] failed to remove orphaned blob %s: %v", path, rmErr)
		}
		return 0, err
	}
	return file.ID, nil
}

// List returns the caller's files when fileIDs is empty or its first
// element is the -1 sentinel, otherwise the files matching fileIDs. An
// empty id-set result comes back as ErrFileNotFound alongside an empty
// slice, which callers treat as a soft condition.
func (s *fileService) List(userID int, fileIDs []int) ([]models.StoredFile, error) {
	if len(fileIDs) == 0 || fileIDs[0] == -1 {
		files, err := s.repo.ListByOwner(userID)
		if err != nil {
			return nil, err
		}
		if files == nil {
			files = []models.StoredFile{}
		}
		return files, nil
	}

	var (
		files []models.StoredFile
		err   error
	)
	if s.ownerScoped {
		files, err = s.repo.ListByIDsOwned(fileIDs, userID)
	} else {
		files, err = s.repo.ListByIDs(fileIDs)
	}
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []models.StoredFile{}, ErrFileNotFound
	}
	return files, nil
}

// Delete removes the metadata row first, then the blob. A failed row
// delete leaves the blob untouched; a failed blob removal is surfaced
// even though the row is already gone.
func (s *fileService) Delete(userID, fileID int) error {
	file, err := s.repo.GetByID(fileID)
	if err != nil {
		return err
	}
	if file == nil {
		return ErrFileNotFound
	}
	if s.ownerScoped && file.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(file.ID); err != nil {
		return err
	}
	return os.Remove(file.FilePath)
}
