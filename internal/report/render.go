package report

import (
	"context"
	"strings"

	"ragbench/internal/runner"
)

// RenderReportHTML renders the report component into a string.
func RenderReportHTML(ctx context.Context, summaries []runner.RunSummary) (string, error) {
	var builder strings.Builder
	if err := ReportPage(summaries).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
