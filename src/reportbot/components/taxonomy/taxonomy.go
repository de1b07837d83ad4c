// Package taxonomy holds the static report category registry and the alias
// table used for free-text classification.
package taxonomy

// Category is one bucket of the report taxonomy. The set is closed;
// extending it means redeploying with a new entry.
type Category struct {
	Code           string
	DisplayName    string
	PlatformReason string // reason code understood by the platform, if any
	Description    string
	Severity       int // 1 (lowest) to 5
}

// Alias maps a free-text token to a canonical category code.
type Alias struct {
	Token string
	Code  string
}

// Categories in declaration order. The fallback match in Classify walks
// this slice front to back, so order is part of the contract.
var Categories = []Category{
	{Code: "porn", DisplayName: "Porn/Adult", Description: "NSFW, nudity", Severity: 4},
	{Code: "spam", DisplayName: "Spam", PlatformReason: "spam", Description: "Mass messaging", Severity: 2},
	{Code: "leak", DisplayName: "Data Leak", Description: "Credentials, PII", Severity: 5},
	{Code: "scam", DisplayName: "Scam/Fraud", PlatformReason: "scam", Description: "Financial fraud", Severity: 5},
	{Code: "violence", DisplayName: "Violence", PlatformReason: "violence", Description: "Threats, extremism", Severity: 5},
	{Code: "illegal", DisplayName: "Illegal", Description: "Drugs, weapons, hacking", Severity: 5},
	{Code: "copyright", DisplayName: "Copyright", PlatformReason: "copyright", Description: "Piracy", Severity: 3},
	{Code: "fake", DisplayName: "Impersonation", Description: "Fake accounts", Severity: 4},
	{Code: "botnet", DisplayName: "Malicious Bot", Description: "Spamming/malware bots", Severity: 4},
	{Code: "phishing", DisplayName: "Phishing", Description: "Fake logins", Severity: 5},
	{Code: "child", DisplayName: "Child Abuse", PlatformReason: "child_abuse", Description: "CSAM", Severity: 5},
	{Code: "fake_news", DisplayName: "Fake News", Description: "Misinformation", Severity: 3},
}

// Aliases in declaration order. Classify takes the first substring match,
// so entry order here is load-bearing; do not reorder.
var Aliases = []Alias{
	{Token: "porno", Code: "porn"},
	{Token: "nsfw", Code: "porn"},
	{Token: "adult", Code: "porn"},
	{Token: "sex", Code: "porn"},
	{Token: "spamming", Code: "spam"},
	{Token: "ads", Code: "spam"},
	{Token: "promotion", Code: "spam"},
	{Token: "data_leak", Code: "leak"},
	{Token: "credentials", Code: "leak"},
	{Token: "dox", Code: "leak"},
	{Token: "fraud", Code: "scam"},
	{Token: "crypto_scam", Code: "scam"},
	{Token: "investment", Code: "scam"},
	{Token: "terror", Code: "violence"},
	{Token: "isis", Code: "violence"},
	{Token: "weapon", Code: "violence"},
	{Token: "drugs", Code: "illegal"},
	{Token: "hack", Code: "illegal"},
	{Token: "card", Code: "illegal"},
	{Token: "pirate", Code: "copyright"},
	{Token: "movie", Code: "copyright"},
	{Token: "crack", Code: "copyright"},
	{Token: "impersonate", Code: "fake"},
	{Token: "fake_account", Code: "fake"},
	{Token: "malware", Code: "botnet"},
	{Token: "virus", Code: "botnet"},
	{Token: "phish", Code: "phishing"},
	{Token: "login", Code: "phishing"},
}

// DefaultCode is the bucket for reasons that match nothing: the most
// generic, lowest-severity category.
const DefaultCode = "spam"

// Lookup returns the category for a code.
func Lookup(code string) (Category, bool) {
	for _, c := range Categories {
		if c.Code == code {
			return c, true
		}
	}
	return Category{}, false
}

// Default returns the fallback category.
func Default() Category {
	c, _ := Lookup(DefaultCode)
	return c
}
