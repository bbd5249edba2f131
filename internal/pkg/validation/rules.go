package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Room numbers: letters, digits and dashes, e.g. "A101", "B-12"
	RoomNoPattern = `^[A-Za-z0-9][A-Za-z0-9\-]{0,9}$`

	// Student identifiers: letters, digits, dashes, underscores
	StudentIDPattern = `^[A-Za-z0-9][A-Za-z0-9_\-]{0,19}$`

	// Contact numbers: digits with optional leading + and separators
	ContactPattern = `^\+?[0-9][0-9 \-]{5,19}$`

	// Username: letters, digits, dots, underscores
	UsernamePattern = `^[A-Za-z0-9._]{3,50}$`

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	RoomNo    *regexp.Regexp
	StudentID *regexp.Regexp
	Contact   *regexp.Regexp
	Username  *regexp.Regexp
}{
	RoomNo:    regexp.MustCompile(RoomNoPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
	Contact:   regexp.MustCompile(ContactPattern),
	Username:  regexp.MustCompile(UsernamePattern),
}
