// Package pdf converts grocery-ad PDFs into page images for the vision model.
package pdf

import (
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

// DefaultQuality is the JPEG quality used for converted ad pages.
const DefaultQuality = 85

// Converter renders PDF pages to JPEG files using go-fitz. One converter may
// convert several documents; Cleanup removes every temp directory it created.
type Converter struct {
	tempDirs []string
}

// NewConverter creates a new PDF converter instance
func NewConverter() *Converter {
	return &Converter{}
}

// IsPDF reports whether path looks like a PDF input.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Convert renders every page of the PDF at pdfPath into a JPEG under a
// temporary directory. Call Cleanup when the images are no longer needed.
func (c *Converter) Convert(ctx context.Context, pdfPath string, quality int) ([]domain.PageImage, error) {
	if err := validatePath(pdfPath); err != nil {
		return nil, err
	}
	if quality < 1 || quality > 100 {
		return nil, domain.ValidationError(fmt.Sprintf("JPEG quality %d out of range 1-100", quality), nil)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, domain.ConversionError("failed to open PDF", err)
	}
	defer doc.Close()

	tempDir, err := os.MkdirTemp("", "deal-finder-*")
	if err != nil {
		return nil, domain.IOError("failed to create temp directory", err)
	}
	c.tempDirs = append(c.tempDirs, tempDir)

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, domain.ValidationError("PDF has no pages", nil)
	}

	images := make([]domain.PageImage, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.Image(pageNum)
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
		}

		outputPath := filepath.Join(tempDir, fmt.Sprintf("page_%03d.jpg", pageNum+1))
		outputFile, err := os.Create(outputPath)
		if err != nil {
			return nil, domain.IOError(fmt.Sprintf("failed to create output file for page %d", pageNum+1), err)
		}

		err = jpeg.Encode(outputFile, img, &jpeg.Options{Quality: quality})
		outputFile.Close()
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to encode page %d", pageNum+1), err)
		}

		bounds := img.Bounds()
		images = append(images, domain.PageImage{
			PageNumber: pageNum + 1,
			ImagePath:  outputPath,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		})
	}

	return images, nil
}

// Cleanup removes the temporary page images.
func (c *Converter) Cleanup() error {
	var firstErr error
	for _, dir := range c.tempDirs {
		if err := os.RemoveAll(dir); err != nil && firstErr == nil {
			firstErr = domain.IOError("failed to remove temp directory", err)
		}
	}
	c.tempDirs = nil
	return firstErr
}

func validatePath(path string) error {
	if path == "" {
		return domain.ValidationError("PDF path is empty", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return domain.IOError("PDF file not accessible", err)
	}
	if info.IsDir() {
		return domain.ValidationError("PDF path is a directory", nil)
	}
	if !IsPDF(path) {
		return domain.ValidationError("file does not have a .pdf extension", nil)
	}
	return nil
}
