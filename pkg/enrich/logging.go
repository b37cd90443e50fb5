package enrich

import (
	"blocklot-enricher/pkg/utils"
	"fmt"
	"strings"
)

// FormatStatistics formats applier statistics for logging
func FormatStatistics(stats *Statistics) string {
	if stats == nil || stats.Count() == 0 {
		return "no stats"
	}
	return fmt.Sprintf("rows=%d, avg=%s, total=%s",
		stats.Count(), utils.FormatNanoSeconds(stats.Avg()), utils.FormatNanoSeconds(stats.Sum()))
}

// FormatRowErrors summarizes failing rows as index:value pairs for logging
func FormatRowErrors(rowErrs []RowError) string {
	if len(rowErrs) == 0 {
		return "none"
	}
	parts := make([]string, len(rowErrs))
	for i, rowErr := range rowErrs {
		parts[i] = fmt.Sprintf("%d:%q", rowErr.Index, rowErr.BlockLot)
	}
	return strings.Join(parts, ", ")
}

// LogBatchApplied logs the outcome of one row-wise application
func LogBatchApplied(sourceID string, total int, rowErrs []RowError, stats *Statistics) string {
	return fmt.Sprintf("[Applier] Batch applied - Source: %s | Records: %d | Failed: %d (%s) | Stats: %s",
		sourceID, total, len(rowErrs), FormatRowErrors(rowErrs), FormatStatistics(stats))
}
