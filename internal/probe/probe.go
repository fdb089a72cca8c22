// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe identifies image files by content signature and reads their
// dimensions without decoding pixel data.
package probe

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	_ "image/png"  // Register PNG decoder.
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.
	"go4.org/media/heif"
)

// heifTypes lists the MIME types of the HEIF container family.
var heifTypes = []string{
	"image/heic",
	"image/heic-sequence",
	"image/heif",
	"image/heif-sequence",
}

// Info describes an image file as seen from its leading bytes.
type Info struct {
	Path   string `json:"path" yaml:"path"`
	MIME   string `json:"mime" yaml:"mime"`
	HEIF   bool   `json:"heif" yaml:"heif"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Sniff detects the MIME type of data from its signature.
func Sniff(data []byte) *mimetype.MIME {
	return mimetype.Detect(data)
}

// IsHEIF reports whether m, or any of its parents, is a HEIF container type.
func IsHEIF(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		for _, t := range heifTypes {
			if m.Is(t) {
				return true
			}
		}
	}
	return false
}

// File opens path, detects its type and reads the pixel dimensions. HEIF
// dimensions come from the primary item's spatial extent property; other
// formats are read with image.DecodeConfig.
func File(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return Info{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}

	info := Info{
		Path: path,
		MIME: mt.String(),
		HEIF: IsHEIF(mt),
	}

	if info.HEIF {
		w, h, err := heifDimensions(f)
		if err != nil {
			return info, fmt.Errorf("reading HEIF dimensions of %s: %w", path, err)
		}
		info.Width, info.Height = w, h
		return info, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("rewinding %s: %w", path, err)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return info, fmt.Errorf("reading dimensions of %s (%s): %w", path, info.MIME, err)
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	return info, nil
}

func heifDimensions(ra io.ReaderAt) (int, int, error) {
	item, err := heif.Open(ra).PrimaryItem()
	if err != nil {
		return 0, 0, err
	}
	w, h, ok := item.VisualDimensions()
	if !ok {
		return 0, 0, fmt.Errorf("primary item has no spatial extents")
	}
	return w, h, nil
}
