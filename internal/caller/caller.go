// Package caller classifies and normalizes caller identifiers reported by
// the telephony layer.
package caller

import "strings"

const (
	// SIPPrefix decorates identifiers forwarded from SIP trunks.
	SIPPrefix = "sip_"

	// MockCallerID is the identifier console/test sessions connect with.
	MockCallerID = "mock_user"

	// DefaultTestPhone is the canonical number substituted for mock callers.
	DefaultTestPhone = "4168398090"
)

// blockedTokens are matched case-insensitively as substrings, with or
// without the SIP prefix. Providers decorate these tokens in inconsistent
// ways, so substring matching is deliberate.
var blockedTokens = []string{
	"unknown",
	"anonymous",
	"private",
	"restricted",
	"unavailable",
	"blocked",
}

// IsUnknown reports whether the identifier must be treated as an
// anonymous or blocked caller. Empty and whitespace-only identifiers are
// unknown.
func IsUnknown(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	lowered := strings.ToLower(trimmed)
	for _, token := range blockedTokens {
		// Substring match also covers sip_-prefixed and decorated forms.
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

// Normalizer maps raw caller identifiers to canonical phone numbers.
type Normalizer struct {
	// TestPhone is returned for mock callers. Defaults to DefaultTestPhone.
	TestPhone string
}

// Normalize returns the canonical phone number for a raw identifier:
// digits and a leading + only. Mock callers map to the fixed test number.
// The result may be empty; callers must treat empty as unknown.
func (n Normalizer) Normalize(raw string) string {
	if raw == MockCallerID {
		if n.TestPhone != "" {
			return n.TestPhone
		}
		return DefaultTestPhone
	}
	raw = strings.TrimPrefix(raw, SIPPrefix)
	return sanitizePhone(raw)
}

// Normalize applies the default Normalizer.
func Normalize(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// sanitizePhone keeps digits and +, dropping spaces, dashes, parentheses
// and any other decoration.
func sanitizePhone(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
