package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	activityout "pti/internal/modules/activity/port/out"
	"pti/internal/platform/markdown"
	"pti/internal/platform/slug"
)

const reportSchemaVersion = 1

// MarkdownReportExporter writes one note per user and day. Re-exporting on
// the same day refreshes the frontmatter and the generated block and keeps
// anything else written in the note.
type MarkdownReportExporter struct {
	dir string
	loc *time.Location
}

func NewMarkdownReportExporter(dir string, loc *time.Location) activityout.ReportExporter {
	if loc == nil {
		loc = time.Local
	}
	return &MarkdownReportExporter{dir: dir, loc: loc}
}

func (e *MarkdownReportExporter) Export(_ context.Context, note activityout.ReportNote) (string, error) {
	day := note.GeneratedAt.In(e.loc)
	dir := filepath.Join(e.dir, userDir(note.UserID), day.Format("2006"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, day.Format("2006-01-02")+"-category-report.md")

	doc := markdown.Note{Body: fmt.Sprintf("# Time by category, %s\n", day.Format("2006-01-02"))}
	if existing, err := os.ReadFile(path); err == nil {
		doc, err = markdown.Parse(string(existing))
		if err != nil {
			return "", fmt.Errorf("parse report note %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read report note: %w", err)
	}

	total := 0.0
	for _, hours := range note.Hours {
		total += hours
	}
	doc.Merge(map[string]any{
		"schema_version": reportSchemaVersion,
		"user_id":        note.UserID,
		"generated_at":   note.GeneratedAt.In(e.loc).Format(time.RFC3339),
		"window_days":    note.WindowDays,
		"total_hours":    total,
		"categories":     note.Hours,
	})
	doc.SetBlock("category-report", renderTable(note))

	rendered, err := doc.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report note: %w", err)
	}
	return path, nil
}

func renderTable(note activityout.ReportNote) string {
	if len(note.Categories) == 0 {
		return fmt.Sprintf("_No activity in the last %d days._", note.WindowDays)
	}
	var b strings.Builder
	b.WriteString("| Category | Hours |\n|---|---:|\n")
	for _, category := range note.Categories {
		label := category
		if label == "" {
			label = "(uncategorized)"
		}
		fmt.Fprintf(&b, "| %s | %.2f |\n", label, note.Hours[category])
	}
	return b.String()
}

// userDir keeps the slug readable and appends a digest of the raw id so ids
// that slug alike stay in separate folders.
func userDir(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return slug.Make(userID) + "-" + hex.EncodeToString(sum[:4])
}
