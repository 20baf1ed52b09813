package markdown

import (
	"strings"
	"testing"
)

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	note, err := Parse("# plain\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(note.Meta) != 0 || note.Body != "# plain\n" {
		t.Fatalf("unexpected note %+v", note)
	}
}

func TestParseMissingClosingSeparator(t *testing.T) {
	t.Parallel()
	if _, err := Parse("---\ntitle: x\n"); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestSetBlockRewritesInPlace(t *testing.T) {
	t.Parallel()
	note := Note{Body: "# Report\n\nmy notes\n"}
	note.SetBlock("report", "- a: 1h")
	note.SetBlock("report", "- b: 2h")
	if strings.Count(note.Body, "pti:report:start") != 1 {
		t.Fatalf("expected one block, got %q", note.Body)
	}
	if !strings.Contains(note.Body, "- b: 2h") || strings.Contains(note.Body, "- a: 1h") {
		t.Fatalf("block not replaced: %q", note.Body)
	}
	if !strings.HasPrefix(note.Body, "# Report\n\nmy notes\n") {
		t.Fatalf("user text lost: %q", note.Body)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()
	note := Note{}
	note.Merge(map[string]any{"window_days": 30, "user_id": "u1"})
	note.SetBlock("report", "- Fitness: 1.50h")
	rendered, err := note.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := Parse(rendered)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Meta["user_id"] != "u1" || parsed.Meta["window_days"] != 30 {
		t.Fatalf("unexpected meta %+v", parsed.Meta)
	}
	if !strings.Contains(parsed.Body, "- Fitness: 1.50h") {
		t.Fatalf("unexpected body %q", parsed.Body)
	}
}
