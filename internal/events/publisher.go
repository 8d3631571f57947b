package events

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// Type names a placement or inventory change
type Type string

const (
	DeviceInstalled     Type = "device_installed"
	DeviceUninstalled   Type = "device_uninstalled"
	DeviceMoved         Type = "device_moved"
	RackCreated         Type = "rack_created"
	DeviceStatusChanged Type = "device_status_changed"
	IPStatusChanged     Type = "ip_status_changed"
)

// Event describes a committed change. Rack fields are empty for inventory events.
type Event struct {
	Type          Type      `json:"type"`
	RackID        string    `json:"rack_id,omitempty"`
	SourceRackID  string    `json:"source_rack_id,omitempty"`
	DeviceID      string    `json:"device_id,omitempty"`
	IPID          string    `json:"ip_id,omitempty"`
	StartPosition int       `json:"start_position,omitempty"`
	DeviceSize    int       `json:"device_size,omitempty"`
	RackVersion   uint64    `json:"rack_version,omitempty"`
	Status        string    `json:"status,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers events to interested parties
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MultiPublisher fans an event out to every publisher. All publishers are
// tried; their errors are joined.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NopPublisher discards every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
