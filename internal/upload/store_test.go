package upload

import (
	"mime/multipart"
	"testing"

	"gohoras/internal/errors"
)

func TestSavePhoto_RejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1024)
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	fh := &multipart.FileHeader{Filename: "notes.pdf", Size: 10}
	if _, err := store.SavePhoto(fh); errors.GetCode(err) != errors.CodeValidationError {
		t.Errorf("expected validation error for .pdf, got %v", err)
	}
}

func TestSavePhoto_RejectsOversizedFile(t *testing.T) {
	store, err := NewStore(t.TempDir(), 100)
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	fh := &multipart.FileHeader{Filename: "big.jpg", Size: 101}
	if _, err := store.SavePhoto(fh); errors.GetCode(err) != errors.CodeValidationError {
		t.Errorf("expected validation error for oversized file, got %v", err)
	}
}

func TestAllowedExtensions(t *testing.T) {
	allowed := []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	for _, ext := range allowed {
		if !allowedExtensions[ext] {
			t.Errorf("extension %s should be allowed", ext)
		}
	}
	for _, ext := range []string{".pdf", ".exe", ".svg", ""} {
		if allowedExtensions[ext] {
			t.Errorf("extension %q should be rejected", ext)
		}
	}
}
