// Package command parses inbound text commands into structured intents.
package command

import (
	"strings"
	"unicode"
)

// TargetKind is the entity class a report verb addresses.
type TargetKind string

const (
	TargetUser    TargetKind = "user"
	TargetChannel TargetKind = "channel"
	TargetGroup   TargetKind = "group"
	TargetBot     TargetKind = "bot"
)

// ReportIntent is the structured form of one report command.
type ReportIntent struct {
	Kind      TargetKind
	TargetRef string // sigil-stripped, otherwise verbatim
	RawReason string // remainder of the line, may contain whitespace
}

// Parse extracts a report intent from one inbound line. It returns nil when
// the line is not a recognized report command or names no target; callers
// reply with usage help instead of treating that as a failure. Target
// validation is deferred to the resolver.
func Parse(raw string) *ReportIntent {
	verb, rest := splitToken(raw)
	kind, ok := verbKind(verb)
	if !ok {
		return nil
	}

	target, reason := splitToken(rest)
	target = strings.TrimPrefix(strings.TrimSpace(target), "@")
	if target == "" {
		return nil
	}

	return &ReportIntent{Kind: kind, TargetRef: target, RawReason: reason}
}

// Verb returns the normalized leading token of a line, e.g.
// "/My_Reports 5" -> "my_reports".
func Verb(raw string) string {
	v, _ := splitToken(raw)
	return strings.ToLower(strings.TrimPrefix(v, "/"))
}

// splitToken cuts the first whitespace-delimited token off a line and
// returns it with the trimmed remainder.
func splitToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

func verbKind(verb string) (TargetKind, bool) {
	switch strings.ToLower(strings.TrimPrefix(verb, "/")) {
	case "report_user":
		return TargetUser, true
	case "report_channel":
		return TargetChannel, true
	case "report_group":
		return TargetGroup, true
	case "report_bot":
		return TargetBot, true
	}
	return "", false
}
