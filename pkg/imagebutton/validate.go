package imagebutton

import "strings"

// Verdict is the result of classifying a selected file.
type Verdict uint8

const (
	// Valid: the file passes all checks.
	Valid Verdict = iota

	// NoFile: the selection carried no file.
	NoFile

	// BadExtension: the filename does not end with any allowed entry.
	BadExtension

	// TooBig: the file size strictly exceeds the configured maximum.
	TooBig
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Valid:
		return "Valid"
	case NoFile:
		return "NoFile"
	case BadExtension:
		return "BadExtension"
	case TooBig:
		return "TooBig"
	default:
		return "Unknown"
	}
}

// Code maps a failing verdict to its error code. Valid maps to zero.
func (v Verdict) Code() Code {
	switch v {
	case NoFile:
		return CodeNoFile
	case BadExtension:
		return CodeBadExtension
	case TooBig:
		return CodeTooBig
	default:
		return 0
	}
}

// Classify checks a selected file (or its absence) against the size and
// extension rules. Pure; no side effects. Checks run in order: presence,
// extension, size — so an oversized file with a bad extension reports
// BadExtension.
func Classify(file *File, maxSize int64, allowed []string) Verdict {
	if file == nil {
		return NoFile
	}
	if !MatchesExtension(file.Name, allowed) {
		return BadExtension
	}
	if file.Size > maxSize {
		return TooBig
	}
	return Valid
}

// MatchesExtension reports whether name ends with any entry of the
// allow-list, compared case-insensitively. Entries are matched as
// literal suffixes, dots included, so an entry "tar.gz" matches
// "backup.tar.gz" and never "targz".
func MatchesExtension(name string, allowed []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range allowed {
		if ext == "" {
			continue
		}
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
