package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterBase holds the identity fields shared by both registrations
type RegisterBase struct {
	Email       string  `json:"email" binding:"required,email,max=150"`
	Password    string  `json:"password" binding:"required,password"`
	Name        string  `json:"name" binding:"required,min=2,max=150"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Address     *string `json:"address,omitempty" binding:"omitempty,max=255"`
	Latitude    string  `json:"latitude,omitempty"`
	Longitude   string  `json:"longitude,omitempty"`
	ConsentData bool    `json:"consentData" binding:"eq=true"`
	AcceptTerms bool    `json:"acceptTerms" binding:"eq=true"`
}

// RegisterVolunteerRequest creates a volunteer account
type RegisterVolunteerRequest struct {
	RegisterBase
	DateOfBirth  *string `json:"dateOfBirth,omitempty" example:"1995-04-12"`
	Availability *string `json:"availability,omitempty"`
}

// RegisterAssociationRequest creates an association account
type RegisterAssociationRequest struct {
	RegisterBase
	Website *string `json:"website,omitempty" binding:"omitempty,max=255"`
	IBAN    *string `json:"iban,omitempty" binding:"omitempty,max=34"`
	TaxID   *string `json:"taxId,omitempty" binding:"omitempty,max=32"`
}

// ResetPasswordRequest asks for a password reset mail
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordConfirmRequest sets a new password with a token received by mail
type ResetPasswordConfirmRequest struct {
	Token       string `json:"token" binding:"required,uuid"`
	NewPassword string `json:"newPassword" binding:"required,password"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  interface{}   `json:"user"`
}
