package service

import (
	"errors"
	"time"

	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

// userLocation returns the timezone of the user's profile, UTC when unset.
func userLocation(profiles repository.ProfileRepository, userID string) (*time.Location, error) {
	profile, err := profiles.ByUserID(userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return time.UTC, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.Location(), nil
}

// userToday returns the current calendar day in the user's timezone.
func userToday(profiles repository.ProfileRepository, userID string, now time.Time) (model.Date, *time.Location, error) {
	loc, err := userLocation(profiles, userID)
	if err != nil {
		return model.Date{}, nil, err
	}
	return model.Today(now, loc), loc, nil
}
