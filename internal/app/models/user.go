package models

import (
	"time"

	"github.com/yigit/volunteerhub/internal/domain"
)

// User holds the identity fields shared by volunteers and associations.
// Exactly one of Volunteer and Association is set, matching RoleType.
type User struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Email         string    `json:"email" db:"email" example:"info@croceverde.org"`
	Password      string    `json:"-" db:"password_hash"`
	Name          string    `json:"name" db:"name" example:"Croce Verde"`
	RoleType      RoleType  `json:"roleType" db:"role_type" example:"ASSOCIATION"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	Bio           *string   `json:"bio,omitempty" db:"bio"`
	Address       *string   `json:"address,omitempty" db:"address"`
	Latitude      *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64  `json:"longitude,omitempty" db:"longitude"`
	PhotoFilename *string   `json:"photoFilename,omitempty" db:"photo_filename"`
	ConsentData   bool      `json:"consentData" db:"consent_data"`
	AcceptTerms   bool      `json:"acceptTerms" db:"accept_terms"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Volunteer   *VolunteerProfile   `json:"volunteer,omitempty"`
	Association *AssociationProfile `json:"association,omitempty"`
}

// VolunteerProfile is the volunteer payload of a user
type VolunteerProfile struct {
	UserID       int64      `json:"-" db:"user_id"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Availability *string    `json:"availability,omitempty" db:"availability"`
}

// AssociationProfile is the association payload of a user
type AssociationProfile struct {
	UserID       int64   `json:"-" db:"user_id"`
	Website      *string `json:"website,omitempty" db:"website"`
	IBAN         *string `json:"iban,omitempty" db:"iban"`
	TaxID        *string `json:"taxId,omitempty" db:"tax_id"`
	OfficialDocs *string `json:"officialDocs,omitempty" db:"official_docs"`
	LogoFilename *string `json:"logoFilename,omitempty" db:"logo_filename"`
}

// Coordinates returns the user's position, nil when not set
func (u *User) Coordinates() *domain.Coordinates {
	return domain.NewCoordinates(u.Latitude, u.Longitude)
}

// IsVolunteer reports the volunteer role
func (u *User) IsVolunteer() bool { return u.RoleType == RoleVolunteer }

// IsAssociation reports the association role
func (u *User) IsAssociation() bool { return u.RoleType == RoleAssociation }

// UserSummary is the public card of a user shown next to content
type UserSummary struct {
	ID            int64    `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	RoleType      RoleType `json:"roleType" db:"role_type"`
	PhotoFilename *string  `json:"photoFilename,omitempty" db:"photo_filename"`
}
