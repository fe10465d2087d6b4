package vault

import (
	"path/filepath"
	"strings"
	"time"
)

// Note is one markdown file read off disk. Raw holds the full decoded
// contents for a single search pass; notes are re-read on every pass
// rather than cached.
type Note struct {
	Path    string
	Raw     []byte
	ModTime time.Time
}

// Basename returns the file name without directory or extension, the
// form used when matching subject queries against untitled notes.
func (n Note) Basename() string {
	base := filepath.Base(n.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
