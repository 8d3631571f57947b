package routes

import (
	"context"
	"fmt"

	"datacenter-inventory/internal/config"
	"datacenter-inventory/internal/events"
	"datacenter-inventory/internal/fixture"
	"datacenter-inventory/internal/infrastructure/memory"
	"datacenter-inventory/internal/logger"
	"datacenter-inventory/internal/metrics"
	"datacenter-inventory/internal/middleware"
	"datacenter-inventory/internal/usecase/auth"
	"datacenter-inventory/internal/usecase/inventory"
	"datacenter-inventory/internal/usecase/rack"
	pkgmqtt "datacenter-inventory/pkg/mqtt"

	"go.uber.org/zap"
)

// Dependencies holds the services and infrastructure behind the router
type Dependencies struct {
	Racks     *memory.RackRepository
	Inventory *memory.InventoryRepository

	RackService      *rack.Service
	InventoryService *inventory.Service
	AuthService      *auth.Service

	Hub      *events.Hub
	MQTT     *events.MQTTPublisher
	Recorder *metrics.Recorder
}

// LoadFixture returns the configured seed data set
func LoadFixture(cfg *config.Config) (*fixture.Fixture, error) {
	if cfg.Seed.File == "" {
		return fixture.Default(), nil
	}
	f, err := fixture.LoadFile(cfg.Seed.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed file %s: %w", cfg.Seed.File, err)
	}
	return f, nil
}

// NewDependencies seeds the repositories and builds every service. The MQTT
// publisher is only created when a broker is configured; a broker that
// cannot be reached is logged and skipped.
func NewDependencies(ctx context.Context, cfg *config.Config, withStream bool) (*Dependencies, error) {
	f, err := LoadFixture(cfg)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Racks:     memory.NewRackRepository(),
		Inventory: memory.NewInventoryRepository(),
		Recorder:  metrics.NewRecorder(),
	}
	if err := fixture.Seed(ctx, f, deps.Racks, deps.Inventory); err != nil {
		return nil, err
	}

	var publishers events.MultiPublisher
	if withStream {
		deps.Hub = events.NewHub(middleware.OriginChecker(&cfg.CORS))
		publishers = append(publishers, deps.Hub)
	}
	if cfg.MQTT.Enabled() {
		if pub := startMQTT(ctx, cfg); pub != nil {
			deps.MQTT = pub
			publishers = append(publishers, pub)
		}
	}

	deps.RackService = rack.NewService(deps.Racks, deps.Inventory, publishers, deps.Recorder)
	deps.InventoryService = inventory.NewService(deps.Inventory, deps.Racks, publishers)
	deps.AuthService = auth.NewService(cfg)

	if err := deps.RackService.RefreshMetrics(ctx); err != nil {
		return nil, err
	}

	logger.Info("Dependencies initialized",
		zap.Int("racks", len(f.Racks)),
		zap.Int("devices", len(f.Inventory.Devices)),
		zap.Bool("mqtt", deps.MQTT != nil),
		zap.Bool("stream", deps.Hub != nil),
	)
	return deps, nil
}

func startMQTT(ctx context.Context, cfg *config.Config) *events.MQTTPublisher {
	clientCfg := pkgmqtt.DefaultConfig(cfg.MQTT.Broker, cfg.MQTT.ClientID)
	clientCfg.Username = cfg.MQTT.Username
	clientCfg.Password = cfg.MQTT.Password

	pub, err := events.NewMQTTPublisher(&events.MQTTConfig{
		ClientConfig: clientCfg,
		TopicPrefix:  cfg.MQTT.TopicPrefix,
		QoS:          cfg.MQTT.QoS,
	})
	if err != nil {
		logger.Warn("MQTT publisher disabled", zap.Error(err))
		return nil
	}
	if err := pub.Start(ctx); err != nil {
		logger.Warn("MQTT broker unreachable, publishing disabled",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(err),
		)
		return nil
	}
	return pub
}

// Close releases the event infrastructure
func (d *Dependencies) Close() {
	if d.Hub != nil {
		d.Hub.Close()
	}
	if d.MQTT != nil {
		d.MQTT.Stop()
	}
}
