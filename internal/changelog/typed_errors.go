package changelog

import "fmt"

// Typed transform errors enabling structured classification without string
// parsing upstream. The CLI decides exit behavior with errors.As.

// TitleNotFoundError reports that the configured changelog title pattern did
// not match anywhere in the document. Fatal: nothing was written.
type TitleNotFoundError struct {
	Pattern string
}

func (e *TitleNotFoundError) Error() string {
	return fmt.Sprintf("changelog title not found (pattern %q)", e.Pattern)
}

// DuplicateEntryError reports that the rendered entry already exists verbatim
// in the document. Callers may treat this as an already-done no-op rather
// than a hard failure.
type DuplicateEntryError struct {
	Number int
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("changelog entry already exists for issue #%d", e.Number)
}
