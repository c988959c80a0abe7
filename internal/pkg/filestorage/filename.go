package filestorage

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var windowsDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SecureFilename reduces a client supplied filename to a flat ASCII name
// that is safe to join onto the upload directory. Accents are decomposed
// and dropped, path separators become word breaks, whitespace runs become
// underscores, anything outside [A-Za-z0-9_.-] is removed and leading or
// trailing dots and underscores are trimmed. The result may be empty.
func SecureFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var ascii strings.Builder
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		ascii.WriteRune(r)
	}

	joined := strings.Join(strings.Fields(ascii.String()), "_")

	var cleaned strings.Builder
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			cleaned.WriteRune(r)
		}
	}

	result := strings.Trim(cleaned.String(), "._")

	base := strings.ToUpper(strings.SplitN(result, ".", 2)[0])
	if _, reserved := windowsDeviceNames[base]; reserved {
		result = "_" + result
	}

	return result
}
