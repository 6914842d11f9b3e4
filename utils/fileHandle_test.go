package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "", GetFileURL(""))

	// Stored paths live under public/uploads, served from /uploads.
	stored := filepath.Join("public", "uploads", "doc-1234.pdf")
	assert.Equal(t, "/uploads/doc-1234.pdf", GetFileURL(stored))
}
