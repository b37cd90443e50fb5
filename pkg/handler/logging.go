package handler

import (
	"blocklot-enricher/pkg/enrich"
	"fmt"
)

// LogBatchReceived logs when a batch arrives on the subscriber route
func LogBatchReceived(batchID, sourceID string, total int) string {
	return fmt.Sprintf("[Handler] Batch received - Batch: %s | Source: %s | Records: %d", batchID, sourceID, total)
}

// LogApplierCreated logs when a new applier is created for a source
func LogApplierCreated(sourceID string, policy enrich.Policy) string {
	return fmt.Sprintf("[Handler] Creating new applier - Source: %s | Policy: %s", sourceID, policy)
}

// LogStoreError logs when persisting a batch fails
func LogStoreError(batchID string, err error) string {
	return fmt.Sprintf("[Handler] Error saving batch - Batch: %s | Error: %v", batchID, err)
}
