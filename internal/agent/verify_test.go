package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

func resultWith(name, citation, jurisdiction string) vectorstore.SearchResult {
	return vectorstore.SearchResult{
		Metadata: vectorstore.Metadata{
			CaseName:     name,
			Citation:     citation,
			Jurisdiction: jurisdiction,
		},
	}
}

func TestVerifyCitations(t *testing.T) {
	results := []vectorstore.SearchResult{
		resultWith("Smith v. Jones", "123 F.3d 456 (9th Cir. 2020)", "federal"),
		resultWith("Unknown Matter", "N/A", "state"),
		resultWith("Johnson v. Board", "234 P.3d 567 (Cal. 2019)", "state"),
	}

	check := VerifyCitations(results)
	assert.Equal(t, 2, check.TotalVerified)
	require.Len(t, check.Verified, 2)
	assert.Equal(t, "Smith v. Jones", check.Verified[0].CaseName)

	require.Len(t, check.Issues, 1)
	assert.Contains(t, check.Issues[0], "Unknown Matter")
	assert.Contains(t, check.Issues[0], "missing citation")
}

func TestVerifyCitationsEmpty(t *testing.T) {
	check := VerifyCitations(nil)
	assert.Zero(t, check.TotalVerified)
	assert.Empty(t, check.Issues)
}

func TestCheckConsistencyMatching(t *testing.T) {
	results := []vectorstore.SearchResult{
		resultWith("A", "1 U.S. 1", "federal"),
		resultWith("B", "2 U.S. 2", "federal"),
	}

	check := CheckConsistency(results, "federal")
	assert.True(t, check.Consistent)
	assert.Empty(t, check.Warnings)
	assert.Equal(t, 2, check.Distribution["federal"])
}

func TestCheckConsistencyStrayJurisdiction(t *testing.T) {
	results := []vectorstore.SearchResult{
		resultWith("A", "1 U.S. 1", "federal"),
		resultWith("B", "2 P.3d 2", "state"),
	}

	check := CheckConsistency(results, "federal")
	assert.False(t, check.Consistent)
	require.Len(t, check.Warnings, 1)
	assert.Contains(t, check.Warnings[0], "1 documents from other jurisdictions")
}

func TestCheckConsistencyUnknownExempt(t *testing.T) {
	results := []vectorstore.SearchResult{
		resultWith("A", "1 U.S. 1", "federal"),
		resultWith("B", "N/A", "unknown"),
	}

	check := CheckConsistency(results, "federal")
	assert.True(t, check.Consistent)
	assert.Empty(t, check.Warnings)
}

func TestCheckConsistencyAllNeverWarns(t *testing.T) {
	results := []vectorstore.SearchResult{
		resultWith("A", "1 U.S. 1", "federal"),
		resultWith("B", "2 P.3d 2", "state"),
	}

	check := CheckConsistency(results, vectorstore.FilterAll)
	assert.True(t, check.Consistent)
	assert.Empty(t, check.Warnings)
	assert.Equal(t, "Found documents across 2 jurisdiction(s)", check.Summary)
}
