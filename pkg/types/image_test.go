package types

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputKind(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputKind
		wantErr bool
	}{
		{in: "", want: OutputJPEG},
		{in: "jpg", want: OutputJPEG},
		{in: "JPG", want: OutputJPEG},
		{in: "jpeg", want: OutputJPEG},
		{in: ".png", want: OutputPNG},
		{in: "PNG", want: OutputPNG},
		{in: "gif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputKindExtension(t *testing.T) {
	assert.Equal(t, ".jpg", OutputJPEG.Extension())
	assert.Equal(t, ".png", OutputPNG.Extension())
	assert.Equal(t, "JPG", OutputJPEG.Label())
	assert.True(t, OutputPNG.Valid())
	assert.False(t, OutputKind("gif").Valid())
}

func TestModeOf(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	opaque := image.NewRGBA(rect)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	translucent := image.NewRGBA(rect)
	opaqueN := image.NewNRGBA(rect)
	for i := 3; i < len(opaqueN.Pix); i += 4 {
		opaqueN.Pix[i] = 0xff
	}
	opaqueYCA := image.NewNYCbCrA(rect, image.YCbCrSubsampleRatio444)
	for i := range opaqueYCA.A {
		opaqueYCA.A[i] = 0xff
	}

	tests := []struct {
		name string
		img  image.Image
		want ColorMode
	}{
		{name: "ycbcr", img: image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), want: ModeRGB},
		{name: "opaque rgba", img: opaque, want: ModeRGB},
		{name: "translucent rgba", img: translucent, want: ModeRGBA},
		{name: "nrgba", img: image.NewNRGBA(rect), want: ModeRGBA},
		{name: "opaque nrgba", img: opaqueN, want: ModeRGB},
		{name: "nycbcra", img: image.NewNYCbCrA(rect, image.YCbCrSubsampleRatio444), want: ModeRGBA},
		{name: "opaque nycbcra", img: opaqueYCA, want: ModeRGB},
		{name: "gray", img: image.NewGray(rect), want: ModeL},
		{name: "gray16", img: image.NewGray16(rect), want: ModeL},
		{name: "alpha", img: image.NewAlpha(rect), want: ModeLA},
		{name: "paletted", img: image.NewPaletted(rect, color.Palette{color.Black}), want: ModeP},
		{name: "cmyk", img: image.NewCMYK(rect), want: ModeCMYK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeOf(tt.img))
		})
	}
}

func TestColorModeNeedsFlatten(t *testing.T) {
	for _, m := range []ColorMode{ModeRGBA, ModeLA, ModeP} {
		assert.True(t, m.NeedsFlatten(), m)
	}
	for _, m := range []ColorMode{ModeRGB, ModeL, ModeCMYK} {
		assert.False(t, m.NeedsFlatten(), m)
	}
	assert.False(t, ModeP.HasAlpha())
	assert.True(t, ModeLA.HasAlpha())
}

func TestPixelImageDimensions(t *testing.T) {
	p := NewPixelImage(image.NewNRGBA(image.Rect(10, 20, 110, 170)))
	assert.Equal(t, 100, p.Width())
	assert.Equal(t, 150, p.Height())
	assert.Equal(t, ModeRGBA, p.Mode)
}
