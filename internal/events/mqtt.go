package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"

	pkgmqtt "datacenter-inventory/pkg/mqtt"

	"go.uber.org/zap"
)

// brokerClient is the part of the MQTT client the publisher needs
type brokerClient interface {
	Connect(ctx context.Context) error
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
	Disconnect()
}

// MQTTConfig describes where placement events are published
type MQTTConfig struct {
	ClientConfig *pkgmqtt.Config
	TopicPrefix  string
	QoS          byte
}

// MQTTPublisher publishes events as JSON to <prefix>/racks/<rack>/<type>,
// or <prefix>/inventory/<type> for events without a rack.
type MQTTPublisher struct {
	client brokerClient
	prefix string
	qos    byte
	log    *zap.Logger

	mu      sync.Mutex
	started bool
}

// NewMQTTPublisher builds a publisher backed by a paho client
func NewMQTTPublisher(cfg *MQTTConfig) (*MQTTPublisher, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt publisher config is not configured")
	}
	return newMQTTPublisher(pkgmqtt.NewClient(cfg.ClientConfig), cfg.TopicPrefix, cfg.QoS), nil
}

func newMQTTPublisher(client brokerClient, prefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		prefix: prefix,
		qos:    qos,
		log:    zap.L().Named("events.mqtt"),
	}
}

// Start connects to the broker
func (p *MQTTPublisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := p.client.Connect(ctx); err != nil {
		return err
	}
	p.started = true
	return nil
}

// Stop disconnects from the broker
func (p *MQTTPublisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.client.Disconnect()
	p.started = false
}

func (p *MQTTPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	topic := p.Topic(event)
	if err := p.client.Publish(ctx, topic, p.qos, false, payload); err != nil {
		p.log.Warn("failed to publish event", zap.String("topic", topic), zap.Error(err))
		return err
	}
	return nil
}

// Topic returns the topic an event is published on
func (p *MQTTPublisher) Topic(event Event) string {
	if event.RackID == "" {
		return path.Join(p.prefix, "inventory", string(event.Type))
	}
	return path.Join(p.prefix, "racks", event.RackID, string(event.Type))
}
