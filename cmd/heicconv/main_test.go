package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/heicconv/internal/convert"
	"github.com/pdiddy/heicconv/pkg/types"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestConvertCommand(t *testing.T) {
	t.Setenv("HEICCONV_HISTORY_DIR", filepath.Join(t.TempDir(), "history"))
	dir := t.TempDir()
	in := writeFixture(t, dir, "holiday.HEIC")

	stdout, _, err := execute(t, "convert", "--format", "png", "--history=false", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Selected: holiday.HEIC")
	assert.Contains(t, stdout, "File converted successfully!\nSaved as: holiday.png")
	assert.FileExists(t, filepath.Join(dir, "holiday.png"))

	stdout, _, err = execute(t, "convert", "--format", "JPG", "--history=false", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved as: holiday.jpg")
	assert.FileExists(t, filepath.Join(dir, "holiday.jpg"))
}

func TestConvertCommandErrors(t *testing.T) {
	t.Setenv("HEICCONV_HISTORY_DIR", filepath.Join(t.TempDir(), "history"))
	dir := t.TempDir()
	wrong := filepath.Join(dir, "image.jpg")
	require.NoError(t, os.WriteFile(wrong, []byte("x"), 0o644))
	corrupt := filepath.Join(dir, "corrupted.heic")
	require.NoError(t, os.WriteFile(corrupt, []byte("This is not a valid image file"), 0o644))

	tests := []struct {
		name       string
		args       []string
		wantKind   convert.ErrorKind
		wantReport string
	}{
		{
			name:       "invalid extension",
			args:       []string{"convert", "--format", "jpg", "--history=false", wrong},
			wantKind:   convert.InvalidExtension,
			wantReport: "Invalid File: Please select a .heic file!\n",
		},
		{
			name:       "missing file",
			args:       []string{"convert", "--format", "jpg", "--history=false", filepath.Join(dir, "gone.heic")},
			wantKind:   convert.FileNotFound,
			wantReport: "File Not Found: The selected file does not exist!\n",
		},
		{
			name:       "corrupted file",
			args:       []string{"convert", "--format", "jpg", "--history=false", corrupt},
			wantKind:   convert.DecodeFailure,
			wantReport: "Conversion Error: Failed to convert file:\n",
		},
		{
			name:       "unknown format",
			args:       []string{"convert", "--format", "gif", "--history=false", corrupt},
			wantReport: "Error: unsupported output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, convert.KindOf(err))

			var buf bytes.Buffer
			report(&buf, err)
			assert.Contains(t, buf.String(), tt.wantReport)
		})
	}
}

func TestConvertCommandRecordsHistory(t *testing.T) {
	t.Setenv("HEICCONV_HISTORY_DIR", filepath.Join(t.TempDir(), "history"))
	dir := t.TempDir()
	in := writeFixture(t, dir, "logged.heic")
	corrupt := filepath.Join(dir, "broken.heic")
	require.NoError(t, os.WriteFile(corrupt, nil, 0o644))

	_, _, err := execute(t, "convert", "--format", "jpg", "--history", in)
	require.NoError(t, err)
	_, _, err = execute(t, "convert", "--format", "jpg", "--history", corrupt)
	require.Error(t, err)

	stdout, _, err := execute(t, "history", "--json")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, corrupt, entries[0]["input_path"])
	assert.Equal(t, "failed", entries[0]["status"])
	assert.Equal(t, filepath.Join(dir, "logged.jpg"), entries[1]["output_path"])
	assert.Equal(t, "RGBA", entries[1]["source_mode"])
}

func TestInspectCommand(t *testing.T) {
	in := writeFixture(t, t.TempDir(), "probe.heic")

	stdout, _, err := execute(t, "inspect", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Type:        image/png")
	assert.Contains(t, stdout, "Container:   raster")
	assert.Contains(t, stdout, "Dimensions:  40x30")
	assert.Contains(t, stdout, "Convertible: true")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "heicconv dev\n", stdout)
}

func TestLoadConfig(t *testing.T) {
	initConfig()

	t.Run("config file in struct layout", func(t *testing.T) {
		want := types.Config{
			Converter: types.ConverterConfig{JPEGQuality: 42},
			History:   types.HistoryConfig{Dir: "/var/lib/heicconv"},
		}
		data, err := yaml.Marshal(want)
		require.NoError(t, err)
		assert.Contains(t, string(data), "converter:\n    jpeg_quality: 42")

		viper.SetConfigType("yaml")
		require.NoError(t, viper.ReadConfig(bytes.NewReader(data)))
		t.Cleanup(func() { viper.ReadConfig(bytes.NewReader(nil)) })

		got := loadConfig()
		assert.Equal(t, 42, got.Converter.JPEGQuality)
		assert.Equal(t, "/var/lib/heicconv", got.History.Dir)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("HEICCONV_CONVERTER_JPEG_QUALITY", "37")
		assert.Equal(t, 37, loadConfig().Converter.JPEGQuality)
	})
}
