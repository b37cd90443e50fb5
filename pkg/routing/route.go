package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/nats-io/nats.go"
)

// MessageCallback is invoked for every message received on a subscribed route.
type MessageCallback func(ctx context.Context, route *NATSRoute, msg *nats.Msg)

// NATSRoute binds a configured subject to a NATS connection.
type NATSRoute struct {
	Config   *RouteConfig
	url      string
	callback MessageCallback

	conn *nats.Conn
	sub  *nats.Subscription
}

func NewNATSRoute(url string, config *RouteConfig) *NATSRoute {
	return &NATSRoute{url: url, Config: config}
}

func NewNATSRouteWithCallback(url string, config *RouteConfig, callback MessageCallback) *NATSRoute {
	return &NATSRoute{url: url, Config: config, callback: callback}
}

// Connect establishes the NATS connection, a no-op when already connected.
func (r *NATSRoute) Connect(ctx context.Context) error {
	if r.conn != nil && r.conn.IsConnected() {
		return nil
	}
	conn, err := nats.Connect(r.url, nats.Name(r.Config.Selector))
	if err != nil {
		return fmt.Errorf("error connecting to nats %s: %v", r.url, err)
	}
	r.conn = conn
	return nil
}

// Subscribe starts delivering messages on the route's subject to the callback.
// Routes with a queue group share delivery across instances.
func (r *NATSRoute) Subscribe(ctx context.Context) error {
	if r.callback == nil {
		return fmt.Errorf("no callback set for route: %s", r.Config.Selector)
	}
	if err := r.Connect(ctx); err != nil {
		return err
	}

	handler := func(msg *nats.Msg) {
		r.callback(ctx, r, msg)
	}

	var err error
	if r.Config.Queue != "" {
		r.sub, err = r.conn.QueueSubscribe(r.Config.Subject, r.Config.Queue, handler)
	} else {
		r.sub, err = r.conn.Subscribe(r.Config.Subject, handler)
	}
	if err != nil {
		return fmt.Errorf("error subscribing to subject %s: %v", r.Config.Subject, err)
	}
	return nil
}

// Publish marshals the message as JSON and publishes it on the route's subject.
func (r *NATSRoute) Publish(ctx context.Context, message any) error {
	if err := r.Connect(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("error marshalling message for subject %s: %v", r.Config.Subject, err)
	}
	return r.conn.Publish(r.Config.Subject, data)
}

// Flush forces delivery of buffered published messages.
func (r *NATSRoute) Flush() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Flush()
}

func (r *NATSRoute) Unsubscribe(ctx context.Context) error {
	if r.sub == nil {
		return nil
	}
	if err := r.sub.Unsubscribe(); err != nil {
		return fmt.Errorf("error unsubscribing from subject %s: %v", r.Config.Subject, err)
	}
	r.sub = nil
	return nil
}

func (r *NATSRoute) Disconnect(ctx context.Context) error {
	if r.conn == nil {
		return nil
	}
	r.conn.Close()
	r.conn = nil
	return nil
}

// NewRouteUsingSelector loads the routing table from the environment and
// connects a publish-only route for selector.
func NewRouteUsingSelector(ctx context.Context, selector string) (*NATSRoute, error) {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	routeConfig, err := cfg.FindRouteBySelector(selector)
	if err != nil {
		return nil, err
	}
	route := NewNATSRoute(cfg.URL, routeConfig)
	if err = route.Connect(ctx); err != nil {
		return nil, err
	}
	return route, nil
}

// NewRouteSubscriberUsingSelector loads the routing table from the environment
// and subscribes callback on the selector's subject.
func NewRouteSubscriberUsingSelector(ctx context.Context, selector string, callback MessageCallback) (*NATSRoute, error) {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	routeConfig, err := cfg.FindRouteBySelector(selector)
	if err != nil {
		return nil, err
	}
	route := NewNATSRouteWithCallback(cfg.URL, routeConfig, callback)
	if err = route.Subscribe(ctx); err != nil {
		return nil, err
	}
	return route, nil
}
