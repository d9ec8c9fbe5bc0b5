package repository

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

var ErrFileNotFound = errors.New("file not found")

type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
	// Latest returns the newest file of fileType uploaded by userID.
	Latest(userID, fileType string) (*model.File, error)
	ByUser(userID string) ([]*model.File, error)
	Delete(id string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	_, err := r.db.NamedExec(`INSERT INTO files
		(id, user_id, type, filename, original_name, mime_type, size, storage_path, public, created_at)
		VALUES (:id, :user_id, :type, :filename, :original_name, :mime_type, :size, :storage_path, :public, :created_at)`,
		file)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (r *fileRepository) get(query string, args ...any) (*model.File, error) {
	return getOne[model.File](r.db, ErrFileNotFound, query, args...)
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	return r.get(`SELECT * FROM files WHERE id = $1`, id)
}

func (r *fileRepository) Latest(userID, fileType string) (*model.File, error) {
	return r.get(`SELECT * FROM files WHERE user_id = $1 AND type = $2
		ORDER BY created_at DESC LIMIT 1`, userID, fileType)
}

func (r *fileRepository) ByUser(userID string) ([]*model.File, error) {
	files := []*model.File{}
	err := r.db.Select(&files, `SELECT * FROM files WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrFileNotFound)
}
