// Package credits regenerates the locale-keyed markdown credits of each
// exhibition from the source page rows and pushes them onto the matching
// remote entries.
//
// Assembly preserves authored fragment order: plain text becomes a section
// heading, rich text is converted to markdown, and pictures embed only when
// their asset already exists on the remote platform.
package credits
