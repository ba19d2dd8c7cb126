package schema

import (
	"fmt"
	"strings"
	"unicode"
)

const maxUsernameLen = 32

// NormalizeUsername trims surrounding whitespace.
func NormalizeUsername(name Username) Username {
	return Username(strings.TrimSpace(string(name)))
}

// ValidateUsername rejects empty names, names longer than 32 runes,
// and names containing control characters.
func ValidateUsername(name Username) error {
	s := string(name)
	if s == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidUser)
	}
	if len([]rune(s)) > maxUsernameLen {
		return fmt.Errorf("%w: username too long", ErrInvalidUser)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: username contains control characters", ErrInvalidUser)
		}
	}
	return nil
}

// NormalizeSessionID trims surrounding whitespace.
func NormalizeSessionID(id SessionID) SessionID {
	return SessionID(strings.TrimSpace(string(id)))
}

// ValidateSessionID rejects empty and whitespace-bearing ids.
func ValidateSessionID(id SessionID) error {
	s := string(id)
	if s == "" {
		return fmt.Errorf("%w: empty session id", ErrInvalidSession)
	}
	if strings.ContainsFunc(s, unicode.IsSpace) {
		return fmt.Errorf("%w: session id contains whitespace", ErrInvalidSession)
	}
	return nil
}

// NormalizeLanguageID lowercases and trims a language tag.
func NormalizeLanguageID(id LanguageID) LanguageID {
	return LanguageID(strings.ToLower(strings.TrimSpace(string(id))))
}

// ValidateLanguageID rejects empty tags. Unknown tags are allowed;
// the dispatcher falls back to a generic handler.
func ValidateLanguageID(id LanguageID) error {
	if id == "" {
		return fmt.Errorf("%w: empty language", ErrInvalidLanguage)
	}
	return nil
}

// NormalizeEventTime coerces an HH:MM wall time. Empty input yields
// the scheduling default of noon.
func NormalizeEventTime(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "12:00", nil
	}
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	h, err := parseClockField(hh)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	m, err := parseClockField(mm)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	if h > 23 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// parseClockField accepts one or two digits and nothing else.
func parseClockField(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("bad clock field %q", s)
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("bad clock field %q", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
