package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
)

// WriteCSV writes every section as title row, header row and data rows, with
// a blank row between sections. Quoting and CRLF line endings follow RFC 4180.
func WriteCSV(w io.Writer, s *dashboard.Snapshot, generatedAt time.Time) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	for i, section := range BuildSections(s, generatedAt) {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return fmt.Errorf("failed to write section separator: %w", err)
			}
		}
		if err := cw.Write([]string{section.Title}); err != nil {
			return fmt.Errorf("failed to write %s: %w", section.Title, err)
		}
		if len(section.Header) > 0 {
			if err := cw.Write(section.Header); err != nil {
				return fmt.Errorf("failed to write %s header: %w", section.Title, err)
			}
		}
		if err := cw.WriteAll(section.Rows); err != nil {
			return fmt.Errorf("failed to write %s rows: %w", section.Title, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
