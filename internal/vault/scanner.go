package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Scanner enumerates and loads the note files under a vault root.
type Scanner struct {
	root    string
	ignored map[string]struct{}
}

func NewScanner(root string, ignoredDirs []string) *Scanner {
	ignored := make(map[string]struct{}, len(ignoredDirs))
	for _, dir := range ignoredDirs {
		ignored[dir] = struct{}{}
	}
	return &Scanner{root: root, ignored: ignored}
}

func (s *Scanner) Root() string {
	return s.root
}

// Walk returns the paths of every note file under the vault root, in
// lexical traversal order. Unreadable entries are skipped and counted
// rather than aborting the scan. A missing or unreadable root is the
// one fatal case.
func (s *Scanner) Walk() ([]string, int, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, 0, fmt.Errorf("vault root %s: %w", s.root, err)
	}

	var paths []string
	skipped := 0

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			skipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == s.root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, ok := s.ignored[name]; ok {
				return filepath.SkipDir
			}
			return nil
		}

		if !isNoteFile(name) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("walking vault %s: %w", s.root, err)
	}

	return paths, skipped, nil
}

// Load reads every path into a Note. Reads run on a bounded worker
// pool; the returned slice preserves the order of paths. Files that
// cannot be read or are not valid text are skipped and counted.
func (s *Scanner) Load(paths []string) ([]Note, int) {
	loaded := make([]*Note, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				return nil
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			if !utf8.Valid(raw) {
				return nil
			}
			loaded[i] = &Note{Path: path, Raw: raw, ModTime: info.ModTime()}
			return nil
		})
	}
	// Workers only record into their own slot, so Wait cannot fail.
	_ = g.Wait()

	notes := make([]Note, 0, len(paths))
	skipped := 0
	for _, n := range loaded {
		if n == nil {
			skipped++
			continue
		}
		notes = append(notes, *n)
	}
	return notes, skipped
}

// Scan is Walk followed by Load: every readable note in the vault,
// in traversal order, plus the count of entries skipped along the way.
func (s *Scanner) Scan() ([]Note, int, error) {
	paths, skippedWalk, err := s.Walk()
	if err != nil {
		return nil, skippedWalk, err
	}
	notes, skippedLoad := s.Load(paths)
	return notes, skippedWalk + skippedLoad, nil
}

func isNoteFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
