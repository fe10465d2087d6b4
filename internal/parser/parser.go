// Package parser extracts search metadata from raw note text: the
// SUBJECT= line, frontmatter and inline tags, and the embedded ID
// code. Extraction is a pure function of the text and never fails;
// malformed input yields absent fields.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const subjectMarker = "SUBJECT="

var (
	frontMatterPattern = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)
	tagsLinePattern    = regexp.MustCompile(`tags:\s*\[(.*?)\]`)
	inlineTagPattern   = regexp.MustCompile(`#(\w+)`)
	idPattern          = regexp.MustCompile(`ID=(\d{8}-\d{4})`)
)

// Metadata is the normalized, searchable view of one note.
type Metadata struct {
	// Subject is the remainder of a first-line SUBJECT= marker,
	// trimmed but otherwise as written. Empty when the marker is
	// absent; callers fall back to the file name at match time.
	Subject string

	// Tags is the union of frontmatter and inline tags, lower-cased,
	// deduplicated and sorted.
	Tags []string

	// ID is the first embedded ID=DDDDDDDD-DDDD code, without the
	// marker. Empty when no well-formed code exists.
	ID string
}

func (m Metadata) HasSubject() bool {
	return m.Subject != ""
}

func (m Metadata) HasID() bool {
	return m.ID != ""
}

// Extract parses raw note text into Metadata.
func Extract(raw []byte) Metadata {
	text := string(raw)

	meta := Metadata{
		Subject: extractSubject(text),
		ID:      extractID(text),
	}

	tags := make(map[string]struct{})
	for _, tag := range frontMatterTags(raw) {
		addTag(tags, tag)
	}
	for _, match := range inlineTagPattern.FindAllStringSubmatch(text, -1) {
		addTag(tags, match[1])
	}
	meta.Tags = setToSortedSlice(tags)

	return meta
}

func extractSubject(text string) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	// The whole first line is trimmed before the marker check, so an
	// indented marker still counts.
	line = strings.TrimSpace(line)

	if !strings.HasPrefix(line, subjectMarker) {
		return ""
	}
	return strings.TrimSpace(line[len(subjectMarker):])
}

func extractID(text string) string {
	match := idPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// splitFrontMatter returns the YAML block delimited by leading ---
// lines and the body that follows it. A text that does not begin with
// a block returns (nil, data).
func splitFrontMatter(data []byte) ([]byte, []byte) {
	loc := frontMatterPattern.FindSubmatchIndex(data)
	if len(loc) < 4 || loc[0] != 0 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

// frontMatterTags decodes the tags entry of the frontmatter block.
// Well-formed YAML goes through the yaml decoder; a block that fails
// to decode is still scraped for a literal `tags: [...]` line so one
// stray field elsewhere in the frontmatter cannot hide the tags.
func frontMatterTags(data []byte) []string {
	fm, _ := splitFrontMatter(data)
	if fm == nil {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return scrapeTagsLine(fm)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return scrapeTagsLine(fm)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "tags" {
			return flattenYAMLValue(mapping.Content[i+1])
		}
	}
	return nil
}

func flattenYAMLValue(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.SequenceNode:
		vals := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind == yaml.ScalarNode {
				vals = append(vals, child.Value)
			}
		}
		return vals
	case yaml.ScalarNode:
		if node.Value == "" {
			return nil
		}
		return []string{node.Value}
	default:
		return nil
	}
}

// scrapeTagsLine is the fallback for frontmatter the yaml decoder
// rejects: find a tags: [...] line and split the bracket contents.
func scrapeTagsLine(fm []byte) []string {
	match := tagsLinePattern.FindSubmatch(fm)
	if match == nil {
		return nil
	}

	var tags []string
	for _, piece := range strings.Split(string(match[1]), ",") {
		piece = strings.Trim(strings.TrimSpace(piece), `"'`)
		if piece != "" {
			tags = append(tags, piece)
		}
	}
	return tags
}

func addTag(set map[string]struct{}, tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag != "" {
		set[tag] = struct{}{}
	}
}

func setToSortedSlice(values map[string]struct{}) []string {
	out := make([]string, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
