package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxUploadSize is the hard cap on a single uploaded file.
const MaxUploadSize = 15 << 20 // 15MB

// Upload categories map to subdirectories under the uploads root.
const (
	UploadIDProofs    = "id-proofs"
	UploadComplaints  = "complaints"
	UploadMaintenance = "maintenance"
)

var (
	ErrFileTooLarge    = errors.New("file too large, max allowed size is 15MB")
	ErrUnsupportedFile = errors.New("only image files (jpg, jpeg, png, webp, heic/heif) and PDF files are allowed")
)

var allowedExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".pdf": true,
	".webp": true, ".heic": true, ".heif": true,
}

// AllowedUpload reports whether a file with the given name and MIME type may
// be stored. Either a recognized extension or an image/PDF content type is
// enough, matching what browsers actually send.
func AllowedUpload(filename, mimeType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	mime := strings.ToLower(mimeType)

	if allowedExts[ext] {
		return true
	}
	return strings.HasPrefix(mime, "image/") ||
		mime == "application/pdf" ||
		strings.Contains(mime, "pdf")
}

// UploadsDir returns the uploads root, defaulting to ./uploads.
func UploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// ValidateUpload checks type and size limits before anything is written.
func ValidateUpload(file *multipart.FileHeader) error {
	if !AllowedUpload(file.Filename, file.Header.Get("Content-Type")) {
		return ErrUnsupportedFile
	}
	if file.Size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// SaveUpload validates and stores an uploaded file under the category
// subdirectory and returns the reference path it will be served from.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, field, category string) (string, error) {
	if err := ValidateUpload(file); err != nil {
		return "", err
	}

	dir := filepath.Join(UploadsDir(), category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uploadFilename(field, file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return "/uploads/" + category + "/" + name, nil
}

func uploadFilename(field, original string) string {
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	return field + "-" + suffix + strings.ToLower(filepath.Ext(original))
}
