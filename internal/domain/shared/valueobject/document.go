package valueobject

import "github.com/google/uuid"

// DocumentRef is an opaque reference to a stored document file.
// The domain never dereferences it; resolution belongs to the file store.
type DocumentRef string

// NewDocumentRef mints a fresh opaque document reference
func NewDocumentRef() DocumentRef {
	return DocumentRef(uuid.NewString())
}

// IsZero reports whether the reference is empty
func (r DocumentRef) IsZero() bool {
	return r == ""
}

// String returns the raw token
func (r DocumentRef) String() string {
	return string(r)
}

// DocumentRefs is an ordered list of opaque document references
type DocumentRefs []DocumentRef

// IsEmpty reports whether the list holds no reference
func (rs DocumentRefs) IsEmpty() bool {
	return len(rs) == 0
}

// Strings returns the raw tokens, preserving order
func (rs DocumentRefs) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// DocumentRefsFromStrings rebuilds a reference list from raw tokens
func DocumentRefsFromStrings(raw []string) DocumentRefs {
	out := make(DocumentRefs, len(raw))
	for i, s := range raw {
		out[i] = DocumentRef(s)
	}
	return out
}
