package report

import (
	"fmt"
	"io"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/dashboard"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes one worksheet per section. Row 1 holds the section title,
// row 2 the bold header and the data starts at row 3.
func WriteXLSX(w io.Writer, s *dashboard.Snapshot, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, section := range BuildSections(s, generatedAt) {
		// the first section takes over the default sheet
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, section.Sheet); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", section.Sheet, err)
			}
		} else if _, err := f.NewSheet(section.Sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", section.Sheet, err)
		}
		if err := writeSheet(f, section, titleStyle, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, section Section, titleStyle, headerStyle int) error {
	sheet := section.Sheet

	if err := f.SetCellValue(sheet, "A1", section.Title); err != nil {
		return fmt.Errorf("failed to write %s title: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("failed to style %s title: %w", sheet, err)
	}

	row := 2
	columns := 2
	if len(section.Header) > 0 {
		if err := setRow(f, sheet, row, section.Header); err != nil {
			return err
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(section.Header), row)
		if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
		columns = len(section.Header)
		row++
	}

	for _, values := range section.Rows {
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	lastCol, _ := excelize.ColumnNumberToName(columns)
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
