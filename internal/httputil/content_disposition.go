package httputil

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// defaultFilename is used when sanitization leaves nothing usable.
const defaultFilename = "download"

// SanitizeFilename reduces a user-supplied filename to a safe ASCII form for
// the plain filename parameter of Content-Disposition. Accented characters
// are decomposed and stripped of their marks; anything outside
// [A-Za-z0-9._-] is replaced with an underscore so word boundaries survive.
func SanitizeFilename(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, name)
	if err != nil {
		ascii = name
	}

	var b strings.Builder
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), ".")
	if sanitized == "" {
		return defaultFilename
	}
	return sanitized
}

// ContentDisposition builds an attachment Content-Disposition header value
// carrying both the sanitized ASCII filename and the RFC 5987 encoded
// original for clients that understand filename*.
func ContentDisposition(name string) string {
	return fmt.Sprintf(
		`attachment; filename="%s"; filename*=UTF-8''%s`,
		SanitizeFilename(name),
		encodeRFC5987(name),
	)
}

const upperhex = "0123456789ABCDEF"

// encodeRFC5987 percent-encodes a UTF-8 string as an RFC 5987 ext-value,
// leaving only the attr-char set literal. The set excludes the single
// quote, semicolon and comma, which carry structure inside the header
// value and must never pass through raw.
func encodeRFC5987(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

// isAttrChar reports whether c is in the attr-char set of RFC 5987
// section 3.2.1.
func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z',
		c >= 'A' && c <= 'Z',
		c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '&', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
