package agent

import (
	"fmt"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
	"github.com/hartlaw-ai/lexrag/pkg/legalcite"
)

// VerifiedCitation is one source whose citation passed the format check.
type VerifiedCitation struct {
	CaseName     string `json:"case_name"`
	Citation     string `json:"citation"`
	Jurisdiction string `json:"jurisdiction"`
}

// CitationCheck summarizes citation verification across retrieved sources.
type CitationCheck struct {
	Verified      []VerifiedCitation `json:"verified_citations"`
	TotalVerified int                `json:"total_verified"`
	Issues        []string           `json:"issues,omitempty"`
}

// VerifyCitations checks every retrieved source for a well-formed citation.
func VerifyCitations(results []vectorstore.SearchResult) CitationCheck {
	var check CitationCheck
	for _, r := range results {
		m := r.Metadata
		v := legalcite.Validate(m.Citation)
		if !v.Valid {
			check.Issues = append(check.Issues,
				fmt.Sprintf("%s for: %s", v.Reason, m.CaseName))
			continue
		}
		check.Verified = append(check.Verified, VerifiedCitation{
			CaseName:     m.CaseName,
			Citation:     m.Citation,
			Jurisdiction: m.Jurisdiction,
		})
	}
	check.TotalVerified = len(check.Verified)
	return check
}

// ConsistencyCheck reports whether retrieved documents match the expected
// jurisdiction.
type ConsistencyCheck struct {
	Consistent   bool           `json:"consistent"`
	Distribution map[string]int `json:"jurisdiction_distribution"`
	Warnings     []string       `json:"warnings,omitempty"`
	Summary      string         `json:"summary"`
}

// CheckConsistency cross-checks the jurisdiction distribution of retrieved
// documents against the jurisdiction the question was analyzed as targeting.
func CheckConsistency(results []vectorstore.SearchResult, expected string) ConsistencyCheck {
	distribution := make(map[string]int)
	for _, r := range results {
		distribution[r.Metadata.Jurisdiction]++
	}

	var warnings []string
	if expected != vectorstore.FilterAll {
		stray := 0
		var others []string
		for jur, n := range distribution {
			if jur != expected && jur != vectorstore.JurisdictionUnknown {
				stray += n
				others = append(others, jur)
			}
		}
		if stray > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"found %d documents from other jurisdictions: %v", stray, others))
		}
	}

	return ConsistencyCheck{
		Consistent:   len(warnings) == 0 || expected == vectorstore.FilterAll,
		Distribution: distribution,
		Warnings:     warnings,
		Summary:      fmt.Sprintf("Found documents across %d jurisdiction(s)", len(distribution)),
	}
}
