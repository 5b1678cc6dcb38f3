package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

func corpusFixture() []*domain.ExtractionRecord {
	return []*domain.ExtractionRecord{
		{
			AbsolutePath: "/docs/contracts.pdf",
			Pages: []string{
				"MASTER AGREEMENT\nbetween ACME Corp and the client",
				"Payment terms: net 30 days\nLate payment incurs interest",
			},
		},
		{
			AbsolutePath: "/docs/invoices.pdf",
			Pages: []string{
				"Invoice 2024-001\nPayment due immediately   ",
			},
		},
	}
}

func TestSearcher_Search_CaseInsensitiveByDefault(t *testing.T) {
	matches, err := NewSearcher().Search(corpusFixture(), "PAYMENT", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "/docs/contracts.pdf", matches[0].AbsolutePath)
	assert.Equal(t, 2, matches[0].Page)
	assert.Equal(t, 1, matches[0].Line)
	assert.Equal(t, "Payment terms: net 30 days", matches[0].Text)

	assert.Equal(t, "/docs/invoices.pdf", matches[2].AbsolutePath)
	assert.Equal(t, "Payment due immediately", matches[2].Text, "trailing whitespace is trimmed")
}

func TestSearcher_Search_CaseSensitive(t *testing.T) {
	matches, err := NewSearcher().Search(corpusFixture(), "Payment", domain.SearchOptions{CaseSensitive: true})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Payment terms: net 30 days", matches[0].Text)
}

func TestSearcher_Search_EmptyQuery(t *testing.T) {
	matches, err := NewSearcher().Search(corpusFixture(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearcher_Search_LiteralQueryIsEscaped(t *testing.T) {
	records := []*domain.ExtractionRecord{
		{AbsolutePath: "/docs/a.pdf", Pages: []string{"cost is $1.50 (net)\ncost is X1Y50"}},
	}

	matches, err := NewSearcher().Search(records, "$1.50", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Line)
}

func TestSearcher_Search_RegexMode(t *testing.T) {
	matches, err := NewSearcher().Search(corpusFixture(), `net \d+ days`, domain.SearchOptions{Regex: true})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Payment terms: net 30 days", matches[0].Text)
}

func TestSearcher_Search_InvalidRegex(t *testing.T) {
	_, err := NewSearcher().Search(corpusFixture(), "payment(", domain.SearchOptions{Regex: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearcher_Search_LimitStopsEarly(t *testing.T) {
	matches, err := NewSearcher().Search(corpusFixture(), "payment", domain.SearchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSearcher_Search_NoMatches(t *testing.T) {
	matches, err := NewSearcher().Search(corpusFixture(), "zebra", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearcher_CompileQuery_Highlighting(t *testing.T) {
	re, err := NewSearcher().CompileQuery("acme", domain.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ACME", re.FindString("between ACME Corp and the client"))
}
