package model

// Finding is a single match reported by the secret scanner.
type Finding struct {
	// Path is the file the match was found in.
	Path string `json:"path"`

	// Rule is the name of the pattern that matched (e.g. "aws_access").
	Rule string `json:"rule"`

	// Description explains what the rule detects.
	Description string `json:"description,omitempty"`

	// Line is the 1-based line number of the match.
	Line int `json:"line"`

	// Preview is a truncated excerpt of the matched value.
	// Newlines are replaced so the preview stays on one report line.
	Preview string `json:"preview"`
}
