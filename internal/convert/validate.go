package convert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/heicconv/pkg/types"
)

const heicExt = ".heic"

// HasHEICExtension reports whether path ends in .heic, ignoring case.
func HasHEICExtension(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), heicExt)
}

// ValidateInput checks that path names a .heic file that exists. It never
// reads the file contents.
func ValidateInput(path string) error {
	if !HasHEICExtension(path) {
		return &Error{Kind: InvalidExtension, Path: path}
	}
	if _, err := os.Stat(path); err != nil {
		return &Error{Kind: FileNotFound, Path: path, Err: err}
	}
	return nil
}

// OutputPath returns the sibling path written for inputPath: the input with
// its extension replaced by the extension of kind. Leading dots of the base
// name are not treated as an extension, so ".heic" becomes ".heic.jpg".
func OutputPath(inputPath string, kind types.OutputKind) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return strings.TrimSuffix(inputPath, ext) + kind.Extension()
}
