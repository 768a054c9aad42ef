package filestorage

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/logger"
)

// LocalStorage saves uploaded images below a root directory, one folder per upload kind
type LocalStorage struct {
	basePath string
	maxWidth int
}

// NewLocalStorage creates a new LocalStorage instance.
// Images wider than maxWidth are scaled down on save; maxWidth <= 0 keeps originals.
func NewLocalStorage(basePath string, maxWidth int) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		maxWidth: maxWidth,
	}, nil
}

// Save stores an uploaded image and returns its generated filename
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, kind domain.UploadKind) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	if !domain.AllowedImage(fileHeader.Filename) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(fileHeader.Filename))
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := filepath.Join(ls.basePath, kind.Folder())
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := uuid.New().String() + ext
	dstPath := filepath.Join(dir, filename)

	if resizable(ext) && ls.maxWidth > 0 {
		err = ls.saveResized(file, dstPath)
	} else {
		err = saveRaw(file, dstPath)
	}
	if err != nil {
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to save uploaded file")
		return "", err
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Str("kind", string(kind)).Msg("File saved successfully")
	return filename, nil
}

func resizable(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func (ls *LocalStorage) saveResized(src io.Reader, dstPath string) error {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}
	if img.Bounds().Dx() > ls.maxWidth {
		img = imaging.Resize(img, ls.maxWidth, 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, dstPath, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func saveRaw(src io.Reader, dstPath string) error {
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file content: %w", err)
	}
	return nil
}

// Delete removes a stored file. Returns nil if the file does not exist.
func (ls *LocalStorage) Delete(kind domain.UploadKind, filename string) error {
	physicalPath := ls.Path(kind, filename)
	if physicalPath == "" {
		return fmt.Errorf("invalid file name: %q", filename)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// Path returns the filesystem path of a stored file; only the base name of filename is used
func (ls *LocalStorage) Path(kind domain.UploadKind, filename string) string {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == "/" || name == ".." {
		return ""
	}
	return filepath.Join(ls.basePath, kind.Folder(), name)
}

// Dimensions reads the size of a stored image
func (ls *LocalStorage) Dimensions(kind domain.UploadKind, filename string) (image.Point, error) {
	img, err := imaging.Open(ls.Path(kind, filename))
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}
