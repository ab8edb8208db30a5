// Package changelog implements the pending-release rewrite: locating the
// changelog title, splitting the unreleased block into labeled subsections,
// inserting a rendered entry into the highest-priority matching subsection,
// and reassembling the document with stable formatting.
//
// The package is a pure transform. It performs no I/O and no logging; all
// inputs arrive as plain values and all failures are typed errors.
package changelog
