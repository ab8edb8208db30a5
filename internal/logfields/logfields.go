package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRepo    = "repository"
	KeyPath    = "path"
	KeyIssue   = "issue_number"
	KeyEvent   = "event"
	KeyLabel   = "label"
	KeySection = "section"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Repository(r string) slog.Attr { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Issue(n int) slog.Attr         { return slog.Int(KeyIssue, n) }
func Event(e string) slog.Attr      { return slog.String(KeyEvent, e) }
func Label(l string) slog.Attr      { return slog.String(KeyLabel, l) }
func Section(s string) slog.Attr    { return slog.String(KeySection, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
