package utils

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

func TestAllowedUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		allowed  bool
	}{
		{"jpeg by extension", "photo.jpg", "", true},
		{"png by extension", "proof.PNG", "", true},
		{"pdf by extension", "id.pdf", "", true},
		{"webp by extension", "site.webp", "", true},
		{"image mime with odd name", "blob", "image/jpeg", true},
		{"pdf mime variant", "scan.bin", "application/x-pdf", true},
		{"executable", "malware.exe", "application/octet-stream", false},
		{"script", "run.sh", "text/x-shellscript", false},
		{"no hints at all", "mystery", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowedUpload(tt.filename, tt.mime); got != tt.allowed {
				t.Errorf("AllowedUpload(%q, %q) = %v, want %v", tt.filename, tt.mime, got, tt.allowed)
			}
		})
	}
}

func TestValidateUpload(t *testing.T) {
	header := func(name, mime string, size int64) *multipart.FileHeader {
		h := textproto.MIMEHeader{}
		if mime != "" {
			h.Set("Content-Type", mime)
		}
		return &multipart.FileHeader{Filename: name, Header: h, Size: size}
	}

	if err := ValidateUpload(header("photo.jpg", "image/jpeg", 1024)); err != nil {
		t.Errorf("small jpeg rejected: %v", err)
	}

	if err := ValidateUpload(header("malware.exe", "application/octet-stream", 1024)); err != ErrUnsupportedFile {
		t.Errorf("exe upload: err = %v, want ErrUnsupportedFile", err)
	}

	if err := ValidateUpload(header("big.png", "image/png", MaxUploadSize+1)); err != ErrFileTooLarge {
		t.Errorf("oversized upload: err = %v, want ErrFileTooLarge", err)
	}

	// The type check runs before the size check, a huge exe reports the
	// type problem.
	if err := ValidateUpload(header("big.exe", "", MaxUploadSize+1)); err != ErrUnsupportedFile {
		t.Errorf("oversized exe: err = %v, want ErrUnsupportedFile", err)
	}
}

func TestUploadFilename(t *testing.T) {
	name := uploadFilename("idProof", "My Passport.PDF")
	if !strings.HasPrefix(name, "idProof-") {
		t.Errorf("filename %q must start with the field name", name)
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("filename %q must keep a lowercased extension", name)
	}
	if strings.Contains(name, " ") {
		t.Errorf("filename %q must not carry the original name", name)
	}
}
