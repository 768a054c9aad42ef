package dto

import "github.com/yigit/volunteerhub/internal/app/models"

// UpdateProfileRequest updates the caller's own profile; role specific fields
// are ignored for the other role
type UpdateProfileRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=150"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Bio          *string `json:"bio,omitempty"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=255"`
	Latitude     string  `json:"latitude,omitempty"`
	Longitude    string  `json:"longitude,omitempty"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty"`
	Availability *string `json:"availability,omitempty"`
	Website      *string `json:"website,omitempty" binding:"omitempty,max=255"`
	IBAN         *string `json:"iban,omitempty" binding:"omitempty,max=34"`
	TaxID        *string `json:"taxId,omitempty" binding:"omitempty,max=32"`
}

// AssociationProfileResponse is the public page of an association
type AssociationProfileResponse struct {
	Association    *models.User       `json:"association"`
	Events         []*models.Event    `json:"events"`
	Campaigns      []*models.Campaign `json:"campaigns"`
	Posts          []*models.Post     `json:"posts"`
	FollowersCount int                `json:"followersCount"`
	IsFollowing    bool               `json:"isFollowing"`
}

// VolunteerProfileResponse is the public page of a volunteer
type VolunteerProfileResponse struct {
	Volunteer            *models.UserSummary   `json:"volunteer"`
	Bio                  *string               `json:"bio,omitempty"`
	FollowedAssociations []*models.UserSummary `json:"followedAssociations"`
}

// UploadResponse reports the stored name of an uploaded image
type UploadResponse struct {
	Filename string `json:"filename" example:"events/3f1c...jpg"`
	URL      string `json:"url"`
}
