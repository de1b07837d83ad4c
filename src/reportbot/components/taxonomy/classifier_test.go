package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEmptyReason(t *testing.T) {
	code, severity := Classify("")
	assert.Equal(t, "spam", code)
	assert.Equal(t, 2, severity)

	code, severity = Classify("   ")
	assert.Equal(t, "spam", code)
	assert.Equal(t, 2, severity)
}

func TestClassifyAliasSubstring(t *testing.T) {
	code, severity := Classify("this looks like a phishing login page")
	assert.Equal(t, "phishing", code)
	assert.Equal(t, 5, severity)

	code, severity = Classify("crypto_scam investment fraud")
	assert.Equal(t, "scam", code)
	assert.Equal(t, 5, severity)

	code, _ = Classify("FULL OF ADS")
	assert.Equal(t, "spam", code)
}

func TestClassifyAliasOrderIsFirstMatch(t *testing.T) {
	// "fraud" (scam) is declared before "crack" (copyright); the earlier
	// entry wins regardless of position in the text.
	code, _ := Classify("crack tool fraud shop")
	assert.Equal(t, "scam", code)
}

func TestClassifyPlatformReasonFallback(t *testing.T) {
	// No alias matches "child_abuse material"; the category's platform
	// reason code does.
	code, severity := Classify("child_abuse material")
	assert.Equal(t, "child", code)
	assert.Equal(t, 5, severity)

	code, _ = Classify("copyright takedown")
	assert.Equal(t, "copyright", code)
}

func TestClassifyUnmatchedDefaultsToSpam(t *testing.T) {
	code, severity := Classify("zzz nothing matches here")
	assert.Equal(t, "spam", code)
	assert.Equal(t, 2, severity)
}

func TestClassifySeverityComesFromCategory(t *testing.T) {
	// Severity hints in the text are ignored.
	code, severity := Classify("severity 1 fraud")
	assert.Equal(t, "scam", code)
	assert.Equal(t, 5, severity)
}

func TestRegistryInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Categories {
		assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
		seen[c.Code] = true
		assert.GreaterOrEqual(t, c.Severity, 1)
		assert.LessOrEqual(t, c.Severity, 5)
		assert.NotEmpty(t, c.DisplayName)
	}

	for _, a := range Aliases {
		_, ok := Lookup(a.Code)
		require.True(t, ok, "alias %q points at unknown category %q", a.Token, a.Code)
	}

	d := Default()
	assert.Equal(t, "spam", d.Code)
}
