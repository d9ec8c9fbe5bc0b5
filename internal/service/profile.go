package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

// Update changes the fields that are set; nil leaves a field as is.
func (s *ProfileService) Update(userID string, name, timezone *string) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		err = validation.ValidateName(trimmed)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		profile.Name = trimmed
	}

	if timezone != nil {
		_, err = time.LoadLocation(*timezone)
		if err != nil || *timezone == "" || *timezone == "Local" {
			return nil, invalidf("unknown timezone %q", *timezone)
		}
		profile.Timezone = *timezone
	}

	err = s.profileRepo.Update(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
