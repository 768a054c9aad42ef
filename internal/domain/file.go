package domain

import (
	"path/filepath"
	"strings"
)

// UploadKind tells which entity an uploaded image belongs to, and so its storage folder
type UploadKind string

const (
	UploadEvent    UploadKind = "events"
	UploadCampaign UploadKind = "campaigns"
	UploadPost     UploadKind = "posts"
	UploadPetition UploadKind = "petitions"
	UploadReport   UploadKind = "reports"
	UploadProfile  UploadKind = "profile-photo"
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// AllowedImage reports whether filename has an accepted image extension
func AllowedImage(filename string) bool {
	_, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Folder returns the relative storage directory of the kind
func (k UploadKind) Folder() string {
	return string(k)
}
