package qr

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels of generated images.
const DefaultSize = 256

// PNG encodes content as a QR code image.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// DataURL returns the QR image as an inline data URL usable in an <img> src.
func DataURL(content string, size int) (template.URL, error) {
	png, err := PNG(content, size)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}

// WriteFile writes the QR image for content to path, creating parent directories.
func WriteFile(path, content string, size int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create qr dir: %w", err)
		}
	}
	png, err := PNG(content, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write qr file: %w", err)
	}
	return nil
}
