package handler

import (
	"blocklot-enricher/pkg/enrich"
)

// Message types exchanged on the routes.
const (
	TypeParcelBatch  = "parcel_batch"
	TypeMonitorState = "processor_state"
)

// Status is the per-batch processing state reported on the monitor route.
type Status string

const (
	Running   Status = "RUNNING"
	Completed Status = "COMPLETED"
	Failed    Status = "FAILED"
)

// ParcelMessage is a batch of property records, raw on the subscriber route
// and enriched on the sync route.
type ParcelMessage struct {
	Type     string          `json:"type"`
	BatchID  string          `json:"batch_id"`
	SourceID string          `json:"source_id"`
	Records  []enrich.Record `json:"records"`
}

// MonitorMessage reports per-batch processing status.
type MonitorMessage struct {
	Type      string `json:"type"`
	BatchID   string `json:"batch_id"`
	Status    Status `json:"status"`
	Exception string `json:"exception,omitempty"`
	Data      any    `json:"data,omitempty"`
}
