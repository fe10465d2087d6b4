package search

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"dynix/internal/vault"
)

func writeNote(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating note dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing note: %v", err)
	}
	return path
}

func newTestEngine(t testing.TB, root string) *Engine {
	t.Helper()
	return NewEngine(vault.NewScanner(root, nil))
}

func matchPaths(rs *ResultSet) []string {
	paths := make([]string, 0, rs.Len())
	for _, m := range rs.Matches {
		paths = append(paths, m.Note.Path)
	}
	return paths
}

func assertOnlyMatch(t *testing.T, rs *ResultSet, want string) {
	t.Helper()

	if rs.Len() != 1 || rs.Matches[0].Note.Path != want {
		t.Fatalf("matches = %v, want exactly [%s]", matchPaths(rs), want)
	}
}

func TestBySubject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	report := writeNote(t, root, "q1.md", "SUBJECT=Quarterly Report\nnumbers")
	writeNote(t, root, "misc.md", "SUBJECT=Groceries\nmilk")

	rs, err := newTestEngine(t, root).BySubject("report")
	if err != nil {
		t.Fatalf("BySubject: %v", err)
	}
	assertOnlyMatch(t, rs, report)
}

func TestBySubjectFallsBackToFilename(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	recipe := writeNote(t, root, "Bread Recipe.md", "no subject marker here")
	writeNote(t, root, "other.md", "also no marker")

	rs, err := newTestEngine(t, root).BySubject("recipe")
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, recipe)
}

func TestBySubjectNoFilenameFallbackWhenSubjectPresent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// File name would match, but the note declares a subject, so
	// matching runs against the subject alone.
	writeNote(t, root, "report-draft.md", "SUBJECT=Vacation ideas\n")

	rs, err := newTestEngine(t, root).BySubject("report")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Fatalf("matches = %v, want none (subject overrides filename)", matchPaths(rs))
	}
}

func TestByTagsBidirectionalContainment(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	html := writeNote(t, root, "web.md", "---\ntags: [html]\n---\nmarkup")
	writeNote(t, root, "db.md", "---\ntags: [sql]\n---\nqueries")

	engine := newTestEngine(t, root)

	// "ml" is contained in "html" but unrelated to "sql", so only
	// web.md comes back.
	rs, err := engine.ByTags([]string{"ml"})
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, html)
}

func TestTagsRelatedPairs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tag, term string
		want      bool
	}{
		{"html", "ml", true},
		{"sql", "ml", false},
		{"finance", "fin", true},
		{"ai", "brainstorm", true},
		{"go", "go", true},
		{"rust", "python", false},
	}
	for _, tc := range cases {
		if got := tagsRelated(tc.tag, tc.term); got != tc.want {
			t.Fatalf("tagsRelated(%q, %q) = %v, want %v", tc.tag, tc.term, got, tc.want)
		}
	}
}

func TestByTagsTermContainsTag(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ai := writeNote(t, root, "ai.md", "thoughts on #ai\n")

	// The query term is longer than the tag; containment runs both
	// directions, so "brainstorm" matches the tag "ai".
	rs, err := newTestEngine(t, root).ByTags([]string{"brainstorm"})
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, ai)
}

func TestByTagsCaseInsensitive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	work := writeNote(t, root, "w.md", "---\ntags: [Work]\n---\n")

	rs, err := newTestEngine(t, root).ByTags([]string{"WORK"})
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, work)
}

func TestByDateIDPrefix(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "meeting.md", "minutes ID=20240131-1530\n")
	engine := newTestEngine(t, root)

	for _, term := range []string{"2024", "202401", "20240131-1530"} {
		rs, err := engine.ByDate(term)
		if err != nil {
			t.Fatalf("ByDate(%q): %v", term, err)
		}
		if rs.Len() != 1 {
			t.Fatalf("ByDate(%q) matched %d notes, want 1", term, rs.Len())
		}
	}

	rs, err := engine.ByDate("2023")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Fatalf("ByDate(2023) matched %v, want none", matchPaths(rs))
	}
}

func TestByDateIgnoresNotesWithoutID(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "plain.md", "no id in this note")

	rs, err := newTestEngine(t, root).ByDate("2024")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Fatalf("matches = %v, want none for ID-less vault", matchPaths(rs))
	}
}

func TestByDateCalendarInputNormalized(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	meeting := writeNote(t, root, "meeting.md", "ID=20240131-1530\n")

	rs, err := newTestEngine(t, root).ByDate("2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, meeting)
}

func TestRunEndToEndScenario(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	subject := writeNote(t, root, "one.md", "SUBJECT=Quarterly Report\nbody")
	tagged := writeNote(t, root, "two.md", "---\ntags: [finance, q1]\n---\nbudget #urgent\n")
	dated := writeNote(t, root, "three.md", "standup notes ID=20230615-0900\n")

	engine := newTestEngine(t, root)

	rs, err := engine.Run(NewQuery(KindSubject, "report"))
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, subject)

	rs, err = engine.Run(NewQuery(KindTags, "fin"))
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, tagged)

	rs, err = engine.Run(NewQuery(KindDate, "202306"))
	if err != nil {
		t.Fatal(err)
	}
	assertOnlyMatch(t, rs, dated)
}

func TestResultsKeepScanOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeNote(t, root, name, "#shared\n")
	}

	rs, err := newTestEngine(t, root).ByTags([]string{"shared"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "c.md"),
	}
	got := matchPaths(rs)
	if len(got) != len(want) {
		t.Fatalf("matched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result %d = %s, want %s (scan order)", i, got[i], want[i])
		}
	}
}

func TestEmptyQueryReturnsNothing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "a.md", "content")

	engine := newTestEngine(t, root)

	rs, err := engine.BySubject("   ")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Fatalf("blank subject query matched %v", matchPaths(rs))
	}

	rs, err = engine.ByTags([]string{"", "  "})
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Fatalf("blank tags query matched %v", matchPaths(rs))
	}
}

func TestMissingVaultRootSurfacesError(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, filepath.Join(t.TempDir(), "nope"))
	if _, err := engine.BySubject("x"); err == nil {
		t.Fatal("expected error for missing vault root")
	}
}

func TestAllTags(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "a.md", "---\ntags: [go, tui]\n---\n#go again\n")
	writeNote(t, root, "b.md", "#go only\n")

	tags, _, err := newTestEngine(t, root).AllTags()
	if err != nil {
		t.Fatal(err)
	}

	want := []TagCount{{Tag: "go", Notes: 2}, {Tag: "tui", Notes: 1}}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags[%d] = %v, want %v", i, tags[i], want[i])
		}
	}
}

func TestNewQuerySplitsAndFoldsTags(t *testing.T) {
	t.Parallel()

	q := NewQuery(KindTags, " Finance, Q1 ,,  ")
	want := []string{"finance", "q1"}
	if len(q.Terms) != len(want) {
		t.Fatalf("terms = %v, want %v", q.Terms, want)
	}
	for i := range want {
		if q.Terms[i] != want[i] {
			t.Fatalf("terms[%d] = %q, want %q", i, q.Terms[i], want[i])
		}
	}
	if q.Empty() {
		t.Fatal("query with terms reported Empty")
	}
}

func TestNormalizeDateTerm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"2024", "2024"},
		{"202401", "202401"},
		{"20240131-1530", "20240131-1530"},
		{"2024-01-31", "20240131"},
		{"gibberish", "gibberish"},
	}
	for _, tc := range cases {
		if got := normalizeDateTerm(tc.in); got != tc.want {
			t.Fatalf("normalizeDateTerm(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func BenchmarkBySubject(b *testing.B) {
	root := b.TempDir()
	for i := 0; i < 200; i++ {
		writeNote(b, root, fmt.Sprintf("note-%03d.md", i),
			fmt.Sprintf("SUBJECT=Note %d\n---\ntags: [bench, t%d]\n---\nbody ID=20240131-1530\n", i, i))
	}
	engine := newTestEngine(b, root)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.BySubject("note 1"); err != nil {
			b.Fatal(err)
		}
	}
}
