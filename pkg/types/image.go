// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data structures shared between the converter,
// the selection session, the history store, and the CLI.
package types

import (
	"fmt"
	"image"
	"strings"
)

// OutputKind selects the target encoding of a conversion.
type OutputKind string

const (
	OutputJPEG OutputKind = "jpg"
	OutputPNG  OutputKind = "png"
)

// DefaultOutputKind is the format selected before the user picks one.
const DefaultOutputKind = OutputJPEG

// Extension returns the file extension, with leading dot, written for this kind.
func (k OutputKind) Extension() string {
	switch k {
	case OutputPNG:
		return ".png"
	default:
		return ".jpg"
	}
}

// Label returns the upper-case name shown to users ("JPG" or "PNG").
func (k OutputKind) Label() string {
	return strings.ToUpper(string(k))
}

// Valid reports whether k is one of the supported output kinds.
func (k OutputKind) Valid() bool {
	return k == OutputJPEG || k == OutputPNG
}

// ParseOutputKind maps a user-supplied format name to an OutputKind.
// Matching is case-insensitive and accepts "jpg", "jpeg" and "png", with or
// without a leading dot. An empty name yields DefaultOutputKind.
func ParseOutputKind(name string) (OutputKind, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "":
		return DefaultOutputKind, nil
	case "jpg", "jpeg":
		return OutputJPEG, nil
	case "png":
		return OutputPNG, nil
	}
	return "", fmt.Errorf("unsupported output format %q: must be one of jpg, png", name)
}

// ColorMode names the per-pixel channel layout of a decoded image.
type ColorMode string

const (
	ModeRGB  ColorMode = "RGB"
	ModeRGBA ColorMode = "RGBA"
	ModeL    ColorMode = "L"
	ModeLA   ColorMode = "LA"
	ModeP    ColorMode = "P"
	ModeCMYK ColorMode = "CMYK"
)

// NeedsFlatten reports whether an image in this mode has to be composited
// onto an opaque background before it can be written as JPEG.
func (m ColorMode) NeedsFlatten() bool {
	switch m {
	case ModeRGBA, ModeLA, ModeP:
		return true
	}
	return false
}

// HasAlpha reports whether the mode carries an alpha channel of its own.
// Palette images may still define transparency through their palette.
func (m ColorMode) HasAlpha() bool {
	return m == ModeRGBA || m == ModeLA
}

// ModeOf derives the ColorMode of a decoded image from its concrete type.
// Truecolor buffers without any translucent pixel report RGB whatever their
// storage, since the PNG encoder writes them without an alpha channel and
// the decoder returns them as RGB.
func ModeOf(img image.Image) ColorMode {
	switch img.(type) {
	case *image.Paletted:
		return ModeP
	case *image.Gray, *image.Gray16:
		return ModeL
	case *image.Alpha, *image.Alpha16:
		return ModeLA
	case *image.CMYK:
		return ModeCMYK
	case *image.YCbCr:
		return ModeRGB
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return ModeRGB
	}
	return ModeRGBA
}

// PixelImage is a decoded image together with its colour mode. It lives only
// for the duration of one conversion.
type PixelImage struct {
	Image image.Image
	Mode  ColorMode
}

// NewPixelImage wraps img and records its mode.
func NewPixelImage(img image.Image) PixelImage {
	return PixelImage{Image: img, Mode: ModeOf(img)}
}

// Width returns the pixel width of the image.
func (p PixelImage) Width() int { return p.Image.Bounds().Dx() }

// Height returns the pixel height of the image.
func (p PixelImage) Height() int { return p.Image.Bounds().Dy() }

// ConversionResult describes a successful conversion.
type ConversionResult struct {
	// OutputPath is the sibling file that was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Kind is the encoding written to OutputPath.
	Kind OutputKind `json:"kind" yaml:"kind"`

	// SourceMode is the colour mode of the decoded input.
	SourceMode ColorMode `json:"source_mode" yaml:"source_mode"`

	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}
