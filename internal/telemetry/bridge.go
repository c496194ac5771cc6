package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
	usecaseRobot "github.com/Despicable-at/robot-delivery-backend/internal/usecase/robot"
	pkgmqtt "github.com/Despicable-at/robot-delivery-backend/pkg/mqtt"
)

// statusMessage is the payload the delivery robot publishes on its status
// topic.
type statusMessage struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// Bridge subscribes to the robot's MQTT status topic and applies updates
// through the robot service, so availability reported by the robot itself
// lands in the same singleton row the HTTP API serves.
type Bridge struct {
	cfg     *config.MQTTConfig
	client  *pkgmqtt.Client
	service *usecaseRobot.Service

	mu      sync.Mutex
	started bool
}

// NewBridge builds a telemetry bridge. The broker address is required.
func NewBridge(cfg *config.MQTTConfig, service *usecaseRobot.Service) (*Bridge, error) {
	if cfg == nil || cfg.Broker == "" {
		return nil, errors.New("mqtt broker is not configured")
	}
	if service == nil {
		return nil, errors.New("robot service is required")
	}

	client := pkgmqtt.NewClient(&pkgmqtt.Config{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	return &Bridge{
		cfg:     cfg,
		client:  client,
		service: service,
	}, nil
}

// Start connects to the broker and subscribes to the status topic.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}

	if err := b.client.Connect(); err != nil {
		return err
	}

	handler := func(topic string, payload []byte) {
		b.handleStatusMessage(ctx, payload)
	}
	if err := b.client.Subscribe(b.cfg.StatusTopic, 1, handler); err != nil {
		b.client.Disconnect()
		return err
	}

	b.started = true
	return nil
}

// Stop disconnects from the broker.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}

	b.client.Disconnect()
	b.started = false
}

func (b *Bridge) handleStatusMessage(ctx context.Context, payload []byte) {
	var msg statusMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("Dropping malformed robot status message", zap.Error(err))
		return
	}

	req := &usecaseRobot.UpdateStatusRequest{
		Status: msg.Status,
		Notes:  msg.Notes,
	}
	if err := b.service.UpdateStatus(ctx, req); err != nil {
		logger.Warn("Failed to apply robot status update",
			zap.String("status", msg.Status),
			zap.Error(err),
		)
	}
}
