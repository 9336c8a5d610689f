package media

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions are the accepted upload suffixes, lower-case with the dot
var AllowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".mp4":  {},
	".mov":  {},
	".avi":  {},
}

// Allowed reports whether filename ends in an accepted extension, case-insensitively
func Allowed(filename string) bool {
	_, ok := AllowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// SecureFilename reduces an uploaded name to a flat, filesystem-safe ASCII form.
// Accents decompose to their base letter, path separators and whitespace become
// underscores, anything outside [A-Za-z0-9_.-] is dropped and leading or
// trailing dots and underscores are trimmed. The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	for _, r := range name {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		ascii.WriteRune(r)
	}

	joined := strings.Join(strings.Fields(ascii.String()), "_")

	var out strings.Builder
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			out.WriteRune(r)
		}
	}
	return strings.Trim(out.String(), "._")
}
