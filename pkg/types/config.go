package types

// DefaultJPEGQuality is the quality factor used for JPEG output.
const DefaultJPEGQuality = 95

// ConverterConfig holds settings for the image converter.
type ConverterConfig struct {
	// JPEGQuality is the JPEG quality factor, 1-100 (default 95).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`
}

// HistoryConfig holds settings for the optional conversion history log.
type HistoryConfig struct {
	// Enabled turns on recording of every conversion attempt.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory that holds the history database
	// (default ~/.config/heicconv).
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all settings read from the config file, environment and flags.
type Config struct {
	Converter ConverterConfig `json:"converter" yaml:"converter"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}
