package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Listing pages whose cached rendering must be refreshed after a write
const (
	PathDashboard = "/"
	PathCompanies = "/companies"
	PathContacts  = "/contacts"
	PathDeals     = "/deals"
	PathTasks     = "/tasks"
	PathTeam      = "/settings/team"
	PathSettings  = "/settings"
)

// Notifier signals that resources of an organization changed
type Notifier interface {
	Changed(ctx context.Context, orgID uuid.UUID, paths ...string) error
}

// Event is the message published for every change
type Event struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Paths          []string  `json:"paths"`
	At             time.Time `json:"at"`
}

// RedisNotifier publishes change events on a Redis pub/sub channel
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a notifier publishing on channel
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

// Changed publishes one event listing every affected path
func (n *RedisNotifier) Changed(ctx context.Context, orgID uuid.UUID, paths ...string) error {
	payload, err := json.Marshal(Event{OrganizationID: orgID, Paths: paths, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode revalidation event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish revalidation event: %w", err)
	}
	return nil
}

// Nop discards every change signal
type Nop struct{}

func (Nop) Changed(context.Context, uuid.UUID, ...string) error { return nil }
