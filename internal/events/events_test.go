package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestMultiPublisher(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}
	multi := MultiPublisher{failing, nil, ok}

	err := multi.Publish(context.Background(), Event{Type: DeviceInstalled, RackID: "rack-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)

	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}

type fakeBroker struct {
	connected bool
	topic     string
	qos       byte
	payload   []byte
	err       error
}

func (f *fakeBroker) Connect(context.Context) error { f.connected = true; return nil }
func (f *fakeBroker) Disconnect()                   { f.connected = false }
func (f *fakeBroker) Publish(_ context.Context, topic string, qos byte, _ bool, payload []byte) error {
	f.topic, f.qos, f.payload = topic, qos, payload
	return f.err
}

func TestMQTTPublisher(t *testing.T) {
	broker := &fakeBroker{}
	p := newMQTTPublisher(broker, "dcim", 1)

	require.NoError(t, p.Start(context.Background()))
	assert.True(t, broker.connected)

	event := Event{Type: DeviceMoved, RackID: "rack-1", SourceRackID: "rack-7", DeviceID: "dev-2", StartPosition: 20, DeviceSize: 2}
	require.NoError(t, p.Publish(context.Background(), event))
	assert.Equal(t, "dcim/racks/rack-1/device_moved", broker.topic)
	assert.Equal(t, byte(1), broker.qos)

	var decoded Event
	require.NoError(t, json.Unmarshal(broker.payload, &decoded))
	assert.Equal(t, "dev-2", decoded.DeviceID)
	assert.Equal(t, "rack-7", decoded.SourceRackID)

	assert.Equal(t, "dcim/inventory/ip_status_changed", p.Topic(Event{Type: IPStatusChanged, IPID: "ip-4"}))

	broker.err = errors.New("not connected")
	assert.Error(t, p.Publish(context.Background(), event))

	p.Stop()
	assert.False(t, broker.connected)
}

func TestNewMQTTPublisherRequiresConfig(t *testing.T) {
	_, err := NewMQTTPublisher(nil)
	assert.Error(t, err)
}

func TestHubStreamsEvents(t *testing.T) {
	hub := NewHub(nil)
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), Event{Type: DeviceInstalled, RackID: "rack-3", DeviceID: "dev-4"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, DeviceInstalled, got.Type)
	assert.Equal(t, "dev-4", got.DeviceID)

	hub.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}
