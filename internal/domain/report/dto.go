package report

import (
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type of the export format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ========================================
// EXPORT
// ========================================

type ExportRequest struct {
	Date   string `json:"date,omitempty"`
	Format Format `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Format = Format(strings.ToLower(strings.TrimSpace(string(r.Format))))
	if r.Format == "" {
		r.Format = FormatCSV
	}
	if r.Format != FormatCSV && r.Format != FormatXLSX {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: ErrInvalidFormat.Error(),
		})
	}

	r.Date = strings.TrimSpace(r.Date)
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SnapshotID  string `json:"snapshot_id"`
	Bytes       int    `json:"bytes"`
}
