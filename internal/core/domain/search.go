package domain

// Match is a single search hit: one line on one page of one document.
// Page and Line are 1-based, mirroring how a reader would open the PDF.
type Match struct {
	// AbsolutePath is the document the hit came from.
	AbsolutePath string

	// Page is the 1-based page number.
	Page int

	// Line is the 1-based line number within the page text.
	Line int

	// Text is the full line containing the match, trailing
	// whitespace trimmed.
	Text string
}

// SearchOptions controls how the corpus scan interprets the query.
type SearchOptions struct {
	// Regex treats the query as a raw regular expression instead of a
	// literal keyword. Literal queries are matched case-insensitively.
	Regex bool

	// CaseSensitive disables the default case folding.
	CaseSensitive bool

	// Limit caps the number of matches returned. Zero means no cap.
	Limit int
}
