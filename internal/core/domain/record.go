package domain

// DocumentIdentity captures the cheap-to-compute identity of a source PDF.
// Size and modification time together act as the fast staleness oracle;
// they are not a cryptographic guarantee of content equality.
type DocumentIdentity struct {
	// AbsolutePath is the resolved absolute path of the document.
	AbsolutePath string

	// SizeBytes is the file size as reported by the filesystem.
	SizeBytes int64

	// ModifiedAt is the file modification time in epoch seconds.
	ModifiedAt int64
}

// Matches reports whether an index entry still describes this identity.
// Both size and modification time must be exactly equal.
func (d DocumentIdentity) Matches(e IndexEntry) bool {
	return d.SizeBytes == e.SizeBytes && d.ModifiedAt == e.ModifiedAt
}

// IndexEntry is one durable index record, keyed by absolute document path.
// It is mutated only after a successful re-extraction of that document.
type IndexEntry struct {
	// SizeBytes is the file size at extraction time.
	SizeBytes int64 `json:"size"`

	// ModifiedAt is the modification time (epoch seconds) at extraction time.
	ModifiedAt int64 `json:"mtime"`

	// Digest is the SHA-256 content digest of the full file bytes,
	// lowercase hex.
	Digest string `json:"sha256"`

	// CacheObject is the name of the stored record holding the
	// extracted pages. Derived from Digest.
	CacheObject string `json:"cache_object"`
}

// Index maps absolute document paths to their index entries.
// The whole mapping is rewritten on every update.
type Index map[string]IndexEntry

// ExtractionRecord is the cached payload for one document: the recognized
// text of every page, in page order, plus the identity metadata that
// produced it. Records are stored one per unique content digest.
type ExtractionRecord struct {
	// AbsolutePath is the source document path at extraction time.
	AbsolutePath string `json:"path"`

	// Digest is the content digest the record is keyed by.
	Digest string `json:"sha256"`

	// SizeBytes mirrors the identity metadata at extraction time.
	SizeBytes int64 `json:"size"`

	// ModifiedAt mirrors the identity metadata at extraction time.
	ModifiedAt int64 `json:"mtime"`

	// CacheObject is the stored object name, derived from Digest.
	CacheObject string `json:"cache_object"`

	// Pages holds the recognized text per page. Pages[i] is page i+1.
	// A page whose recognition failed holds the empty string.
	Pages []string `json:"pages"`
}

// PageCount returns the number of pages in the record.
func (r *ExtractionRecord) PageCount() int {
	return len(r.Pages)
}

// IndexEntry derives the index entry that should reference this record.
func (r *ExtractionRecord) IndexEntry() IndexEntry {
	return IndexEntry{
		SizeBytes:   r.SizeBytes,
		ModifiedAt:  r.ModifiedAt,
		Digest:      r.Digest,
		CacheObject: r.CacheObject,
	}
}
