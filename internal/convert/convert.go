// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a HEIC file into a sibling JPG or PNG file.
//
// The input is decoded by content signature, flattened onto white when the
// target is JPEG and the image carries transparency, and written next to
// the input with the extension replaced. An existing output file is
// overwritten in place.
package convert

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/pdiddy/heicconv/pkg/types"
)

// Converter converts one image file into the requested output kind.
type Converter interface {
	// Convert reads inputPath and writes the sibling file for kind,
	// returning where it was written.
	Convert(inputPath string, kind types.OutputKind) (types.ConversionResult, error)
}

// ImageConverter is the Converter backed by goheif and the Go image codecs.
type ImageConverter struct {
	quality int
	log     io.Writer
}

// NewImageConverter creates a converter. A zero JPEGQuality selects
// types.DefaultJPEGQuality. Per-step diagnostics are written to w; pass nil
// to discard them.
func NewImageConverter(cfg types.ConverterConfig, w io.Writer) (*ImageConverter, error) {
	quality := cfg.JPEGQuality
	if quality == 0 {
		quality = types.DefaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d out of range 1-100", quality)
	}
	if w == nil {
		w = io.Discard
	}
	return &ImageConverter{quality: quality, log: w}, nil
}

// Quality returns the JPEG quality factor in use.
func (c *ImageConverter) Quality() int { return c.quality }

// Convert decodes inputPath, prepares the pixels for kind and writes the
// result to OutputPath(inputPath, kind). The caller is expected to have run
// ValidateInput. Failures are returned as *Error with kind DecodeFailure or
// EncodeOrWriteFailure; a failed write may leave a truncated output file.
func (c *ImageConverter) Convert(inputPath string, kind types.OutputKind) (types.ConversionResult, error) {
	if !kind.Valid() {
		return types.ConversionResult{}, &Error{
			Kind: EncodeOrWriteFailure,
			Path: inputPath,
			Err:  fmt.Errorf("unsupported output kind %q", kind),
		}
	}

	src, err := Decode(inputPath)
	if err != nil {
		return types.ConversionResult{}, &Error{Kind: DecodeFailure, Path: inputPath, Err: err}
	}
	fmt.Fprintf(c.log, "decoded: %s (%s %dx%d)\n", filepath.Base(inputPath), src.Mode, src.Width(), src.Height())

	outPath := OutputPath(inputPath, kind)

	img := src.Image
	if kind == types.OutputJPEG && src.Mode.NeedsFlatten() {
		img = Flatten(src)
		fmt.Fprintf(c.log, "flattened: %s onto white\n", src.Mode)
	}

	if err := c.write(outPath, img, kind); err != nil {
		return types.ConversionResult{}, &Error{Kind: EncodeOrWriteFailure, Path: outPath, Err: err}
	}
	fmt.Fprintf(c.log, "wrote: %s\n", filepath.Base(outPath))

	return types.ConversionResult{
		OutputPath: outPath,
		Kind:       kind,
		SourceMode: src.Mode,
		Width:      src.Width(),
		Height:     src.Height(),
	}, nil
}

// Flatten composites p onto an opaque white RGB canvas of the same size,
// weighting each pixel by its alpha. Palette images are expanded to RGBA
// first so transparent palette entries come out white.
func Flatten(p types.PixelImage) *image.RGBA {
	src := p.Image
	if p.Mode == types.ModeP {
		src = imaging.Clone(src)
	}

	b := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Over)
	return canvas
}

func (c *ImageConverter) write(path string, img image.Image, kind types.OutputKind) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := c.encode(bw, img, kind); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func (c *ImageConverter) encode(w io.Writer, img image.Image, kind types.OutputKind) error {
	var err error
	switch kind {
	case types.OutputJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(c.quality))
	case types.OutputPNG:
		err = imaging.Encode(w, eightBit(img), imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", kind.Label(), err)
	}
	return nil
}

// eightBit re-buffers images whose colour model the PNG encoder would
// otherwise write with 16 bits per channel. HEIC decodes as *image.YCbCr,
// so this covers every HEIC to PNG conversion.
func eightBit(img image.Image) image.Image {
	switch img.(type) {
	case *image.YCbCr, *image.NYCbCrA, *image.CMYK:
		return imaging.Clone(img)
	}
	return img
}
