// Package bankio moves the question bank to and from xlsx workbooks.
package bankio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/store"
)

// SheetName is the worksheet written by Export.
const SheetName = "Questions"

// Headers is the header row of an exported workbook. Import locates columns
// by header text, so column order is free and extra columns are ignored.
var Headers = []string{"ID", "Category", "Subtopic", "Kind", "Text", "Payload", "Source", "Created At"}

var requiredHeaders = []string{"category", "subtopic", "kind", "payload"}

// RowError describes a rejected row. Row is the 1-based sheet row.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Message) }

// ImportResult summarizes an Import.
type ImportResult struct {
	TotalRows  int
	Added      int
	Duplicates int
	Errors     []RowError
}

// Export writes every bank entry matching f to w as an xlsx workbook and
// returns the number of rows written.
func Export(ctx context.Context, repo store.QuestionRepo, f store.BankFilter, w io.Writer) (int, error) {
	entries, err := repo.ListQuestions(ctx, f)
	if err != nil {
		return 0, err
	}

	xf := excelize.NewFile()
	defer xf.Close()

	index, err := xf.NewSheet(SheetName)
	if err != nil {
		return 0, fmt.Errorf("create sheet: %w", err)
	}
	xf.SetActiveSheet(index)
	if err := xf.DeleteSheet("Sheet1"); err != nil {
		return 0, fmt.Errorf("remove default sheet: %w", err)
	}

	if err := writeRow(xf, 1, toAny(Headers)); err != nil {
		return 0, err
	}
	for i, e := range entries {
		row := []any{
			e.ID,
			e.Category,
			e.Subtopic,
			e.Kind,
			previewText(e.Kind, e.Payload),
			e.Payload,
			e.Source,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writeRow(xf, i+2, row); err != nil {
			return 0, err
		}
	}

	if err := xf.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(entries), nil
}

// Import reads the first sheet of the workbook in r and saves every valid
// row to repo with source "import". Invalid rows are reported in the
// result and skipped; payloads already in the bank count as duplicates.
func Import(ctx context.Context, repo store.QuestionRepo, r io.Reader) (*ImportResult, error) {
	xf, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer xf.Close()

	sheets := xf.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := xf.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := cols[h]; !ok {
			return nil, fmt.Errorf("missing %q column", h)
		}
	}

	res := &ImportResult{TotalRows: len(rows) - 1}
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		entry, err := parseRow(cell("category"), cell("subtopic"), cell("kind"), cell("payload"))
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		added, err := repo.SaveQuestion(ctx, entry)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if added {
			res.Added++
		} else {
			res.Duplicates++
		}
	}

	slog.InfoContext(ctx, "bank import completed",
		"total_rows", res.TotalRows, "added", res.Added,
		"duplicates", res.Duplicates, "errors", len(res.Errors))
	return res, nil
}

// parseRow validates one row and returns the bank entry with its payload
// normalized through the question codec.
func parseRow(category, subtopic, kindName, payload string) (store.BankQuestion, error) {
	topic, err := catalog.Lookup(category, subtopic)
	if err != nil {
		return store.BankQuestion{}, err
	}
	kind, err := question.ParseKind(kindName)
	if err != nil {
		return store.BankQuestion{}, err
	}
	q, err := question.Decode(kind, []byte(payload))
	if err != nil {
		return store.BankQuestion{}, err
	}
	normalized, err := question.Encode(q)
	if err != nil {
		return store.BankQuestion{}, err
	}
	return store.BankQuestion{
		Category: topic.CategoryKey,
		Subtopic: topic.SubtopicID,
		Kind:     string(kind),
		Payload:  string(normalized),
		Source:   "import",
	}, nil
}

// previewText returns the question text for the human-readable column.
func previewText(kindName, payload string) string {
	kind, err := question.ParseKind(kindName)
	if err != nil {
		return ""
	}
	q, err := question.Decode(kind, []byte(payload))
	if err != nil {
		return ""
	}
	return q.Common().Text
}

func writeRow(xf *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := xf.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
