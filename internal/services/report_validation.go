package services

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/ats-analyzer/internal/models"
)

//go:embed schemas/report_minimums.json
var reportMinimumsSchema string

// ReportValidator checks a recovered report against the minimum counts the report
// prompt asks for. It reports shortfalls; it never rejects a report.
type ReportValidator interface {
	Validate(report models.DetailedReport) ([]string, error)
}

type schemaReportValidator struct {
	schema *gojsonschema.Schema
}

func NewReportValidator() (ReportValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(reportMinimumsSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load report minimums schema: %w", err)
	}

	return &schemaReportValidator{schema: schema}, nil
}

// Validate returns one "field: description" entry per shortfall, sorted.
func (v *schemaReportValidator) Validate(report models.DetailedReport) ([]string, error) {
	report.ValidationIssues = nil

	result, err := v.schema.Validate(gojsonschema.NewGoLoader(report))
	if err != nil {
		return nil, fmt.Errorf("failed to validate report: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		issues = append(issues, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	sort.Strings(issues)

	return issues, nil
}
