package handler

import (
	"blocklot-enricher/pkg/enrich"
	"blocklot-enricher/pkg/routing"
	"blocklot-enricher/pkg/store"
	"context"
	"log"
	"os"
)

const (
	SelectorSubscriber = "data/transformers/property/blocklot-split-1.0"
	SelectorMonitor    = "processor/monitor"
	SelectorStoreSync  = "processor/state/sync"
)

var (
	dsn = os.Getenv("DSN")

	subscriberRoute *routing.NATSRoute // the route we are listening on
	monitorRoute    *routing.NATSRoute // route for sending status and errors
	syncRoute       *routing.NATSRoute // route for sending enriched batches

	// parcel persistence, nil when no DSN is configured
	parcelBackend *store.Backend

	serviceConfig = ConfigFromEnv()

	applierCache *enrich.CacheApplier
)

func Startup(ctx context.Context) {
	var err error

	applierCache = enrich.NewCacheApplierWithConfig(serviceConfig.ApplierIdleTTL, serviceConfig.CleanupInterval)

	// persistence is optional, without a DSN the service runs stateless
	if dsn != "" {
		if parcelBackend, err = store.NewBackend(dsn); err != nil {
			log.Fatalf("unable to connect to parcel store: %v", err)
		}
	}

	// set up listener route such that batches can be received from the NATS server and processed
	if subscriberRoute, err = routing.NewRouteSubscriberUsingSelector(ctx, SelectorSubscriber, MessageCallback); err != nil {
		log.Fatalf("unable to create nats route subscriber: %v", err)
	}

	// setup other required routes, monitor and sync
	if monitorRoute, err = routing.NewRouteUsingSelector(ctx, SelectorMonitor); err != nil {
		log.Fatalf("unable to create nats route: %v", err)
	}
	if syncRoute, err = routing.NewRouteUsingSelector(ctx, SelectorStoreSync); err != nil {
		log.Fatalf("unable to initialize route: %v", err)
	}

	log.Printf("[Handler] Listening on subject: %v (policy: %v)", subscriberRoute.Config.Subject, serviceConfig.Policy)
}

func Teardown(ctx context.Context) {
	if applierCache != nil {
		applierCache.Shutdown()
	}

	if subscriberRoute != nil {
		if err := subscriberRoute.Unsubscribe(ctx); err != nil {
			log.Printf("error unsubscribing: %v", err)
		}
		if err := subscriberRoute.Disconnect(ctx); err != nil {
			log.Printf("error disconnecting subscriber route: %v", err)
		}
	}

	if syncRoute != nil {
		if err := syncRoute.Disconnect(ctx); err != nil {
			log.Printf("error disconnecting sync route: %v", err)
		}
	}

	if monitorRoute != nil {
		if err := monitorRoute.Disconnect(ctx); err != nil {
			log.Printf("error disconnecting monitor route: %v", err)
		}
	}
}
