package service

import (
	"context"

	"pagecraft/internal/models"
	"pagecraft/internal/repository"
)

// UserService handles profile reads and updates.
type UserService struct {
	users repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfileInput carries a partial profile update. Absent fields are left
// alone; explicit nulls clear the stored value.
type UpdateProfileInput struct {
	FullName  models.Optional[string] `json:"full_name"`
	Bio       models.Optional[string] `json:"bio"`
	AvatarURL models.Optional[string] `json:"avatar_url"`
}

// UpdateProfile applies a presence-aware partial update to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyOptionalString(input.FullName, &user.FullName)
	applyOptionalString(input.Bio, &user.Bio)
	applyOptionalString(input.AvatarURL, &user.AvatarURL)

	if len(user.Bio) > 500 {
		return nil, models.NewValidationError("bio must not exceed 500 characters")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// applyOptionalString writes an Optional into dst: values overwrite, nulls
// clear, absent fields leave dst untouched.
func applyOptionalString(o models.Optional[string], dst *string) {
	if !o.Present() {
		return
	}
	if o.IsNull() {
		*dst = ""
		return
	}
	v, _ := o.Get()
	*dst = v
}
