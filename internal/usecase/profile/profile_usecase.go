package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	FirstName         *string   `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName          *string   `json:"last_name" binding:"omitempty,min=1,max=100"`
	Bio               *string   `json:"bio" binding:"omitempty,max=500"`
	Church            *string   `json:"church" binding:"omitempty,max=200"`
	Denomination      *string   `json:"denomination" binding:"omitempty,max=100"`
	Interests         *[]string `json:"interests" binding:"omitempty,max=20"`
	MinistryInterests *[]string `json:"ministry_interests" binding:"omitempty,max=20"`
	LocationLat       *float64  `json:"location_lat" binding:"omitempty,min=-90,max=90"`
	LocationLon       *float64  `json:"location_lon" binding:"omitempty,min=-180,max=180"`
	ProfileCompleted  *bool     `json:"profile_completed"`
}

// ProfileResponse represents profile response with additional info
type ProfileResponse struct {
	*domain.Profile
	Age           int      `json:"age"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns a profile by id with age and distance from the viewer
func (uc *ProfileUseCase) GetProfile(ctx context.Context, targetID, viewerID string) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	response := &ProfileResponse{
		Profile: profile,
		Age:     profile.Age(),
	}

	// Calculate distance if both locations are available
	if viewerID != "" && viewerID != targetID {
		viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
		if err == nil {
			if from, to := viewer.Location(), profile.Location(); from != nil && to != nil {
				distance := from.DistanceMiles(*to)
				response.DistanceMiles = &distance
			}
		}
	}

	return response, nil
}

// UpdateProfile updates the caller's own profile; only provided fields
// change.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Update fields if provided
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Church != nil {
		profile.Church = req.Church
	}
	if req.Denomination != nil {
		profile.Denomination = req.Denomination
	}
	if req.Interests != nil {
		profile.Interests = *req.Interests
	}
	if req.MinistryInterests != nil {
		profile.MinistryInterests = *req.MinistryInterests
	}
	if req.LocationLat != nil {
		profile.LocationLat = req.LocationLat
	}
	if req.LocationLon != nil {
		profile.LocationLon = req.LocationLon
	}
	if req.ProfileCompleted != nil {
		profile.ProfileCompleted = *req.ProfileCompleted
	}

	now := time.Now()
	profile.LastActive = &now

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
