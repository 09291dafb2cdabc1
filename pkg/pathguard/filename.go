package pathguard

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// Windows device names are forbidden even with an extension attached:
// "CON.txt" still resolves to the console device on those filesystems.
var reservedDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeFilename reduces a client-supplied filename to a single safe path
// component. Both "/" and "\" are treated as separators regardless of host
// OS, so traversal attempts embedded in uploaded filenames are neutralized
// on every platform. Remaining separator and NUL bytes become "_".
//
// Reserved names (".", "..", "::", the empty string, and Windows device
// names matched case-insensitively on the part before the first ".") are
// rejected entirely: the function returns "". The function is idempotent.
func SanitizeFilename(raw string) string {
	raw = strings.ReplaceAll(raw, "\\", "/")
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}

	raw = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, raw)

	if isReservedName(raw) {
		return ""
	}

	return raw
}

// SanitizeFilenameEncoding sanitizes like SanitizeFilename and then applies
// a lossy re-encode for target filesystems whose encoding cannot represent
// arbitrary characters. Each unrepresentable character is replaced with one
// "_": a run of failures produces one underscore per character, never a
// collapsed run. A nil encoding means the target is Unicode-capable and no
// transcoding is performed.
func SanitizeFilenameEncoding(raw string, enc encoding.Encoding) string {
	name := SanitizeFilename(raw)
	if name == "" || enc == nil {
		return name
	}

	encoder := enc.NewEncoder()

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == utf8.RuneError {
			b.WriteByte('_')
			continue
		}
		if _, err := encoder.String(string(r)); err != nil {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}

	name = b.String()
	if isReservedName(name) {
		return ""
	}

	return name
}

func isReservedName(name string) bool {
	switch name {
	case "", ".", "..", "::":
		return true
	}

	stem := name
	if idx := strings.IndexByte(stem, '.'); idx >= 0 {
		stem = stem[:idx]
	}

	return reservedDeviceNames[strings.ToUpper(stem)]
}
