package handler

import (
	"blocklot-enricher/pkg/blocklot"
	"blocklot-enricher/pkg/enrich"
	"blocklot-enricher/pkg/routing"
	"blocklot-enricher/pkg/store"
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"log"
)

// MessageCallback processes one batch of property records received on the
// subscriber route: split every block_lot, publish the enriched batch on the
// sync route, persist it, and report status on the monitor route.
func MessageCallback(ctx context.Context, route *routing.NATSRoute, msg *nats.Msg) {
	defer func() {
		if err := msg.Ack(); err != nil && err != nats.ErrMsgNoReply {
			log.Printf("error acking message: %v, error: %v", msg.Data, err)
		}
	}()

	var parcelMsg ParcelMessage
	if err := json.Unmarshal(msg.Data, &parcelMsg); err != nil {
		PublishRouteStatus(ctx, "", Failed, err.Error(), string(msg.Data))
		return
	}
	if parcelMsg.BatchID == "" {
		parcelMsg.BatchID = uuid.NewString()
	}
	log.Print(LogBatchReceived(parcelMsg.BatchID, parcelMsg.SourceID, len(parcelMsg.Records)))

	PublishRouteStatus(ctx, parcelMsg.BatchID, Running, "", nil)
	defer func() {
		if panicErr := recover(); panicErr != nil {
			PublishRouteStatus(ctx, parcelMsg.BatchID, Failed, fmt.Sprintf("panic error: %v", panicErr), parcelMsg.Records)
		}
	}()

	// get the applier for this source or create one under the service policy
	applier, err := applierCache.GetOrSet(parcelMsg.SourceID, func() (*enrich.Applier, error) {
		log.Print(LogApplierCreated(parcelMsg.SourceID, serviceConfig.Policy))
		return enrich.NewApplier(serviceConfig.Policy), nil
	})
	if err != nil {
		PublishRouteStatus(ctx, parcelMsg.BatchID, Failed, err.Error(), nil)
		return
	}

	records, rowErrs, err := applier.Apply(parcelMsg.Records)
	if err != nil {
		// fail-fast: the whole batch is rejected, nothing is forwarded
		PublishRouteStatus(ctx, parcelMsg.BatchID, Failed, err.Error(), rowErrs)
		return
	}
	log.Print(enrich.LogBatchApplied(parcelMsg.SourceID, len(records), rowErrs, applier.Statistics))

	PublishEnrichedBatch(ctx, parcelMsg.BatchID, parcelMsg.SourceID, records)

	if parcelBackend != nil {
		if err = parcelBackend.SaveParcels(ctx, parcelsFromRecords(records, rowErrs)); err != nil {
			log.Print(LogStoreError(parcelMsg.BatchID, err))
			PublishRouteStatus(ctx, parcelMsg.BatchID, Failed, err.Error(), nil)
			return
		}
	}

	if len(rowErrs) > 0 {
		PublishRouteStatus(ctx, parcelMsg.BatchID, Failed,
			fmt.Sprintf("%d of %d records failed", len(rowErrs), len(records)), rowErrs)
		return
	}
	PublishRouteStatus(ctx, parcelMsg.BatchID, Completed, "", nil)
}

// parcelsFromRecords converts successfully enriched records into parcel rows,
// skipping every record reported in rowErrs.
func parcelsFromRecords(records []enrich.Record, rowErrs []enrich.RowError) []store.Parcel {
	failed := make(map[int]bool, len(rowErrs))
	for _, rowErr := range rowErrs {
		failed[rowErr.Index] = true
	}

	parcels := make([]store.Parcel, 0, len(records))
	for i, record := range records {
		if failed[i] {
			continue
		}
		blockLot, _ := record[blocklot.FieldBlockLot].(string)
		block, _ := record[blocklot.FieldBlock].(string)
		lot, _ := record[blocklot.FieldLot].(string)
		parcels = append(parcels, store.NewParcel(blockLot, block, lot))
	}
	return parcels
}

// PublishRouteStatus sends a batch status update to the monitor route.
func PublishRouteStatus(ctx context.Context, batchID string, status Status, exception string, data any) {
	monitorMessage := MonitorMessage{
		Type:      TypeMonitorState,
		BatchID:   batchID,
		Status:    status,
		Exception: exception,
		Data:      data,
	}

	log.Printf("[Handler] Sending monitor status - Batch: %s | Status: %s", batchID, status)

	if err := monitorRoute.Publish(ctx, monitorMessage); err != nil {
		log.Print("critical error: unable to publish status to monitor route")
		return
	}
	if err := monitorRoute.Flush(); err != nil {
		log.Print("critical error: unable to flush monitor route")
	}
}

// PublishEnrichedBatch sends the enriched records to the sync route.
func PublishEnrichedBatch(ctx context.Context, batchID, sourceID string, records []enrich.Record) {
	syncMessage := ParcelMessage{
		Type:     TypeParcelBatch,
		BatchID:  batchID,
		SourceID: sourceID,
		Records:  records,
	}

	log.Printf("[Handler] Sending enriched batch to sync route - Batch: %s | Records: %d", batchID, len(records))

	if err := syncRoute.Publish(ctx, syncMessage); err != nil {
		log.Print("critical error: unable to publish batch to sync route")
		return
	}
	if err := syncRoute.Flush(); err != nil {
		log.Print("critical error: unable to flush sync route")
	}
}
