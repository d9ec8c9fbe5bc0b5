package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/model"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	Create(profile *model.Profile) error
	Update(profile *model.Profile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	return getOne[model.Profile](r.db, ErrProfileNotFound, `SELECT * FROM profiles WHERE user_id = $1`, userID)
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.Timezone == "" {
		profile.Timezone = model.DefaultTimezone
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
		profile.UpdatedAt = profile.CreatedAt
	}

	_, err := r.db.NamedExec(`
		INSERT INTO profiles (id, user_id, name, timezone, created_at, updated_at)
		VALUES (:id, :user_id, :name, :timezone, :created_at, :updated_at)`, profile)
	return err
}

func (r *profileRepository) Update(profile *model.Profile) error {
	profile.UpdatedAt = time.Now()
	result, err := r.db.Exec(`
		UPDATE profiles
		SET name = $1, timezone = $2, updated_at = $3
		WHERE user_id = $4
	`, profile.Name, profile.Timezone, profile.UpdatedAt, profile.UserID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrProfileNotFound)
}
