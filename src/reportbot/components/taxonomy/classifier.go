package taxonomy

import "strings"

// Classify maps a free-text reason onto the registry and returns the
// canonical code with its declared severity. Matching is first-match over
// the alias table in declared order, then over category platform reason
// codes, then the default. Severity always comes from the resolved
// category, never from the text. Pure function over the two static tables.
func Classify(rawReason string) (string, int) {
	reason := strings.ToLower(strings.TrimSpace(rawReason))
	if reason == "" {
		d := Default()
		return d.Code, d.Severity
	}

	for _, a := range Aliases {
		if strings.Contains(reason, a.Token) {
			c, _ := Lookup(a.Code)
			return c.Code, c.Severity
		}
	}

	for _, c := range Categories {
		if c.PlatformReason != "" && strings.Contains(reason, c.PlatformReason) {
			return c.Code, c.Severity
		}
	}

	d := Default()
	return d.Code, d.Severity
}
