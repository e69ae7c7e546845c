package rename

import (
	"strings"
	"unicode/utf8"
)

const (
	minNameLen = 3
	maxNameLen = 63
)

// ValidateName trims s and checks it against the droplet naming rules:
// 3 to 63 characters, and only ASCII letters and digits once hyphens and
// underscores are removed. It returns the trimmed name.
func ValidateName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return "", ErrNameLength
	}
	rest := strings.NewReplacer("-", "", "_", "").Replace(name)
	if rest == "" {
		return "", ErrNameCharset
	}
	for i := 0; i < len(rest); i++ {
		if !isASCIIAlnum(rest[i]) {
			return "", ErrNameCharset
		}
	}
	return name, nil
}

func isASCIIAlnum(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
