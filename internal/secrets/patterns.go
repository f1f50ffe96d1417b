package secrets

import "regexp"

// Pattern is a named secret signature.
type Pattern struct {
	// Name identifies the rule in findings (e.g. "aws_access").
	Name string

	// Description explains what the rule detects.
	Description string

	// Regexp is the compiled signature.
	Regexp *regexp.Regexp
}

// DefaultPatterns returns the built-in secret signatures.
//
// The signatures target concrete, well-known token formats first and fall
// back to a generic "api_key = ..." literal matcher. Order matters only for
// reporting: the first matching rule names the finding.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:        "openai_key",
			Description: "OpenAI API key",
			Regexp:      regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
		},
		{
			Name:        "aws_access",
			Description: "AWS access key ID",
			Regexp:      regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		},
		{
			Name:        "google_api",
			Description: "Google API key",
			Regexp:      regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
		},
		{
			Name:        "generic_api",
			Description: "generic API key assignment",
			Regexp:      regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?[A-Za-z0-9_\-]{16,}["']?`),
		},
		{
			Name:        "private_key",
			Description: "PEM private key header",
			Regexp:      regexp.MustCompile(`-----BEGIN (?:RSA|EC|PRIVATE) KEY-----`),
		},
	}
}
