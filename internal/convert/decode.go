package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"

	"github.com/pdiddy/heicconv/internal/probe"
	"github.com/pdiddy/heicconv/pkg/types"
)

var errEmptyFile = errors.New("file is empty")

// Decode reads the image at path. The decoder is chosen from the content
// signature: HEIF containers go through goheif, everything else through the
// registered standard and x/image decoders.
func Decode(path string) (types.PixelImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PixelImage{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return types.PixelImage{}, errEmptyFile
	}

	mt := probe.Sniff(data)

	var img image.Image
	if probe.IsHEIF(mt) {
		img, err = decodeHEIF(data)
	} else {
		img, err = imaging.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return types.PixelImage{}, fmt.Errorf("decoding %s content: %w", mt.String(), err)
	}
	return types.NewPixelImage(img), nil
}

// decodeHEIF decodes the primary image of a HEIF container. Panics from the
// HEIF parser are reported as decode errors.
func decodeHEIF(data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("malformed HEIF container: %v", r)
		}
	}()
	return goheif.Decode(bytes.NewReader(data))
}
