package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("ad.pdf"))
	assert.True(t, IsPDF("/tmp/weekly/AD.PDF"))
	assert.False(t, IsPDF("ad.jpg"))
	assert.False(t, IsPDF("ad"))
}

func TestConvert_RejectsBadPaths(t *testing.T) {
	c := NewConverter()

	_, err := c.Convert(context.Background(), "", DefaultQuality)
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))

	_, err = c.Convert(context.Background(), "/nonexistent/ad.pdf", DefaultQuality)
	assert.True(t, domain.IsType(err, domain.ErrorTypeIO))

	dir := t.TempDir()
	_, err = c.Convert(context.Background(), dir, DefaultQuality)
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))

	notPDF := filepath.Join(dir, "ad.jpg")
	require.NoError(t, os.WriteFile(notPDF, []byte("jpeg"), 0o644))
	_, err = c.Convert(context.Background(), notPDF, DefaultQuality)
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))
}

func TestConvert_RejectsBadQuality(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ad.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	c := NewConverter()
	_, err := c.Convert(context.Background(), path, 0)
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))

	_, err = c.Convert(context.Background(), path, 101)
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))
}

func TestCleanup_NoTempDirs(t *testing.T) {
	c := NewConverter()
	assert.NoError(t, c.Cleanup())
}
