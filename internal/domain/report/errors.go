package report

import "errors"

var (
	ErrInvalidFormat          = errors.New("format must be csv or xlsx")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
