// Package legalcite validates and extracts US legal citation strings
// (reporters, CFR and USC references).
package legalcite

import (
	"regexp"
	"sort"
	"strings"
)

// Format identifies the citation family a string belongs to.
type Format string

const (
	FormatFederalCase Format = "federal_case"
	FormatStateCase   Format = "state_case"
	FormatCFR         Format = "cfr"
	FormatUSC         Format = "usc"
	FormatUnknown     Format = "unknown"
)

// Validation is the outcome of a format check.
type Validation struct {
	Valid    bool   `json:"valid"`
	Format   Format `json:"format"`
	Citation string `json:"citation"`
	Reason   string `json:"reason"`
}

var formatMarkers = []struct {
	format  Format
	markers []string
}{
	{FormatCFR, []string{"CFR"}},
	{FormatUSC, []string{"U.S.C."}},
	{FormatFederalCase, []string{"F.2d", "F.3d", "F.4th", "F.Supp", "F. Supp", "U.S."}},
	{FormatStateCase, []string{"P.2d", "P.3d", "N.E.", "S.E.", "N.W.", "S.W.", "A.2d", "A.3d"}},
}

// Validate checks whether a citation string matches a recognized family.
// The sentinel "N/A" counts as missing.
func Validate(citation string) Validation {
	if citation == "" || citation == "N/A" {
		return Validation{
			Valid:    false,
			Format:   FormatUnknown,
			Citation: citation,
			Reason:   "missing citation",
		}
	}

	for _, f := range formatMarkers {
		for _, marker := range f.markers {
			if strings.Contains(citation, marker) {
				return Validation{
					Valid:    true,
					Format:   f.format,
					Citation: citation,
					Reason:   "valid format",
				}
			}
		}
	}

	return Validation{
		Valid:    false,
		Format:   FormatUnknown,
		Citation: citation,
		Reason:   "unrecognized format",
	}
}

var citationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s+U\.S\.\s+\d+`),
	regexp.MustCompile(`(?i)\d+\s+F\.\s*(?:2d|3d|4th)\s+\d+`),
	regexp.MustCompile(`(?i)\d+\s+F\.\s*Supp\.\s*(?:2d|3d)?\s+\d+`),
	regexp.MustCompile(`(?i)\d+\s+CFR\s+§?\s*[\d.]+`),
	regexp.MustCompile(`(?i)\d+\s+U\.S\.C\.\s+§?\s*\d+`),
}

// Extract pulls distinct citation strings out of legal text, sorted for
// deterministic output.
func Extract(text string) []string {
	seen := make(map[string]bool)
	for _, pattern := range citationPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			seen[match] = true
		}
	}

	citations := make([]string, 0, len(seen))
	for c := range seen {
		citations = append(citations, c)
	}
	sort.Strings(citations)
	return citations
}
