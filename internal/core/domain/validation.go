package domain

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MaxTitleLength is the cap on task titles, counted in runes.
const MaxTitleLength = 255

// TitlePolicy decides which characters a task title may contain. The policy
// is picked once at startup and injected into the service; the two storage
// backends share it.
type TitlePolicy string

const (
	// PolicyStrict only admits ASCII letters, digits and spaces.
	PolicyStrict TitlePolicy = "strict"
	// PolicyUnicode admits any Unicode letter or digit plus the plain space.
	PolicyUnicode TitlePolicy = "unicode"
)

// ParseTitlePolicy maps a configuration value to a TitlePolicy.
func ParseTitlePolicy(value string) (TitlePolicy, error) {
	switch TitlePolicy(value) {
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyUnicode, "":
		return PolicyUnicode, nil
	default:
		return "", fmt.Errorf("unknown title policy %q", value)
	}
}

// ValidationReason identifies which rule a candidate title broke.
type ValidationReason string

const (
	ReasonEmptyTitle        ValidationReason = "empty_title"
	ReasonTitleTooLong      ValidationReason = "title_too_long"
	ReasonInvalidCharacters ValidationReason = "invalid_characters"
)

// ValidationError reports a rejected task title.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task title: %s", e.Reason)
}

// ValidateTitle checks a candidate title against the policy. The candidate is
// expected to be trimmed already; a zero-length candidate fails with
// ReasonEmptyTitle.
func (p TitlePolicy) ValidateTitle(candidate string) error {
	if candidate == "" {
		return &ValidationError{Reason: ReasonEmptyTitle}
	}
	if utf8.RuneCountInString(candidate) > MaxTitleLength {
		return &ValidationError{Reason: ReasonTitleTooLong}
	}
	for _, r := range candidate {
		if !p.allows(r) {
			return &ValidationError{Reason: ReasonInvalidCharacters}
		}
	}
	return nil
}

func (p TitlePolicy) allows(r rune) bool {
	if p == PolicyStrict {
		return r == ' ' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
	}
	return r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
