package filestorage

import (
	"errors"
	"mime/multipart"

	"github.com/yigit/volunteerhub/internal/domain"
)

// ErrUnsupportedFile is returned for uploads that are not accepted images
var ErrUnsupportedFile = errors.New("unsupported file type")

// FileStorage defines the interface for image storage operations
type FileStorage interface {
	// Save stores the upload under the folder of kind and returns the stored filename
	Save(fileHeader *multipart.FileHeader, kind domain.UploadKind) (string, error)

	// Delete removes a stored file; missing files are not an error
	Delete(kind domain.UploadKind, filename string) error

	// Path returns the filesystem path of a stored file
	Path(kind domain.UploadKind, filename string) string
}
