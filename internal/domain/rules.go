package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTagNameLength    = 25
	MaxTagContentLength = 2000

	MinPoints          = 1
	MaxPoints          = 20
	MaxWarnTypeLength  = 25
	MaxWarnTypes       = 25
	MaxCommentLength   = 256
	DefaultMaxPoints   = 12
	DefaultMaxStrikes  = 3
	MaxMaxPoints       = 100
	MaxMaxStrikes      = 10
	MaxPrefixLength    = 5
	MaxGateTextLength  = 250
	DefaultGatewayText = "Welcome! Read the rules, then react with the confirm emoji below to gain access."
)

// SupportedLocales lists the locales a guild can choose.
var SupportedLocales = []string{"en", "fr"}

// GenerateID returns a short hex identifier derived from the current time,
// in units of 100ns. Used for tags, warns and error references.
func GenerateID(now time.Time) string {
	return fmt.Sprintf("%x", now.UnixNano()/100)
}

// IsLowerIdent reports whether s is non-empty and made only of a-z.
func IsLowerIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func ValidateTagName(name string) error {
	if !IsLowerIdent(name) {
		return ErrTagNameInvalid
	}
	if len(name) > MaxTagNameLength {
		return ErrTagNameTooLong
	}
	return nil
}

func ValidateTagContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrTagContentEmpty
	}
	if utf8.RuneCountInString(content) > MaxTagContentLength {
		return ErrTagContentTooLong
	}
	return nil
}

func ValidateWarnType(name string) error {
	if !IsLowerIdent(name) {
		return ErrWarnTypeInvalid
	}
	if len(name) > MaxWarnTypeLength {
		return ErrWarnTypeTooLong
	}
	return nil
}

func ValidatePoints(points int) error {
	if points < MinPoints || points > MaxPoints {
		return ErrPointsOutOfRange
	}
	return nil
}

func ValidateComment(comment string) error {
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

func ValidatePrefix(prefix string) error {
	if prefix == "" || utf8.RuneCountInString(prefix) > MaxPrefixLength || strings.ContainsAny(prefix, " \t\n") {
		return ErrPrefixInvalid
	}
	return nil
}

func ValidateLocale(locale string) error {
	for _, l := range SupportedLocales {
		if l == locale {
			return nil
		}
	}
	return ErrLocaleInvalid
}

func ValidateMaxPoints(v int) error {
	if v < 1 || v > MaxMaxPoints {
		return ErrMaxPointsRange
	}
	return nil
}

func ValidateMaxStrikes(v int) error {
	if v < 1 || v > MaxMaxStrikes {
		return ErrMaxStrikesRange
	}
	return nil
}

func ValidateGateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidValue
	}
	if utf8.RuneCountInString(text) > MaxGateTextLength {
		return ErrGateTextTooLong
	}
	return nil
}

// Ordinal renders 1 as "1st", 2 as "2nd", 11 as "11th".
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
