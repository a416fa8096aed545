package report

import "fmt"

// formatScore renders a metric value for report output.
func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}
