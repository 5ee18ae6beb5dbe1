package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"kiosk/internal/apperr"
)

// ImageContentType is served for every allowed image extension.
const ImageContentType = "image/jpeg"

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true}

// Image is an opened image file. The caller must close it.
type Image struct {
	io.ReadCloser
	Name        string
	ContentType string
	Size        int64
}

// ImageService resolves image filenames under a fixed root directory.
type ImageService struct {
	root string
}

// NewImageService creates a new ImageService serving files from root.
func NewImageService(root string) *ImageService {
	return &ImageService{root: root}
}

// Open validates filename and opens it under the image root. Names with
// path separators, parent references or a disallowed extension are
// ErrInvalidInput; missing files and directories are ErrNotFound.
func (s *ImageService) Open(ctx context.Context, filename string) (*Image, error) {
	if err := validateImageName(filename); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromStore("open image", err)
	}

	// OpenInRoot refuses to follow anything that leaves the root, including
	// symlinks.
	f, err := os.OpenInRoot(s.root, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("image %s not found", filename)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, err
		}
		return nil, apperr.Invalid("image %s cannot be opened: %v", filename, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, apperr.NotFound("image %s not found", filename)
	}

	return &Image{
		ReadCloser:  f,
		Name:        filename,
		ContentType: ImageContentType,
		Size:        info.Size(),
	}, nil
}

func validateImageName(name string) error {
	if name == "" {
		return apperr.Invalid("image name is required")
	}
	if strings.ContainsAny(name, `/\`+"\x00") || strings.Contains(name, "..") {
		return apperr.Invalid("image name %q must be a plain file name", name)
	}
	if name != filepath.Base(name) || filepath.IsAbs(name) {
		return apperr.Invalid("image name %q must be a plain file name", name)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedImageExts[ext] {
		return apperr.Invalid("invalid image format %q, accepted formats: .jpg, .jpeg", ext)
	}
	return nil
}
