package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/webhook-outbox/registration"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of registration.Repository
 * Uses a hash per registration plus a set of ids for listing
 */

const (
	hashPrefix = "registration" // Hash naming: registration:{id}
	indexKey   = "registrations"
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{client: client}, nil
}

// NewRepositoryWithClient wraps an existing Redis client
func NewRepositoryWithClient(client *redis.Client) *Repository {
	return &Repository{client: client}
}

// Store persists a new registration
func (r *Repository) Store(ctx context.Context, reg registration.Registration) error {
	if err := r.write(ctx, reg); err != nil {
		return err
	}

	if err := r.client.SAdd(ctx, indexKey, reg.ID).Err(); err != nil {
		return fmt.Errorf("indexing registration: %w", err)
	}
	return nil
}

// Update overwrites an existing registration
func (r *Repository) Update(ctx context.Context, reg registration.Registration) error {
	exists, err := r.client.SIsMember(ctx, indexKey, reg.ID).Result()
	if err != nil {
		return fmt.Errorf("checking registration: %w", err)
	}
	if !exists {
		return registration.ErrNotFound
	}
	return r.write(ctx, reg)
}

// Get retrieves a registration by ID
func (r *Repository) Get(ctx context.Context, id string) (registration.Registration, error) {
	data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("getting registration: %w", err)
	}
	if len(data) == 0 {
		return registration.Registration{}, registration.ErrNotFound
	}
	return parse(data)
}

// List returns all registrations
func (r *Repository) List(ctx context.Context) ([]registration.Registration, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing registration ids: %w", err)
	}

	regs := make([]registration.Registration, 0, len(ids))
	for _, id := range ids {
		reg, err := r.Get(ctx, id)
		if err == registration.ErrNotFound {
			// Removed between SMembers and Get
			continue
		}
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// Delete removes a registration and its index entry
func (r *Repository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.SRem(ctx, indexKey, id).Result()
	if err != nil {
		return fmt.Errorf("removing registration index: %w", err)
	}
	if removed == 0 {
		return registration.ErrNotFound
	}

	if err := r.client.Del(ctx, hashKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting registration: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

func (r *Repository) write(ctx context.Context, reg registration.Registration) error {
	eventsJSON, err := json.Marshal(reg.Events)
	if err != nil {
		return fmt.Errorf("marshaling events: %w", err)
	}
	headersJSON, err := json.Marshal(reg.Headers)
	if err != nil {
		return fmt.Errorf("marshaling headers: %w", err)
	}

	active := "0"
	if reg.Active {
		active = "1"
	}

	err = r.client.HSet(ctx, hashKey(reg.ID), map[string]interface{}{
		"id":         reg.ID,
		"url":        reg.URL,
		"events":     string(eventsJSON),
		"secret":     reg.Secret,
		"headers":    string(headersJSON),
		"active":     active,
		"created_at": reg.CreatedAt.Unix(),
		"updated_at": reg.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return fmt.Errorf("storing registration: %w", err)
	}
	return nil
}

// Helper functions

func hashKey(id string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, id)
}

func parse(data map[string]string) (registration.Registration, error) {
	var events []string
	if data["events"] != "" {
		if err := json.Unmarshal([]byte(data["events"]), &events); err != nil {
			return registration.Registration{}, fmt.Errorf("unmarshaling events: %w", err)
		}
	}

	headers := make(map[string]string)
	if data["headers"] != "" {
		if err := json.Unmarshal([]byte(data["headers"]), &headers); err != nil {
			return registration.Registration{}, fmt.Errorf("unmarshaling headers: %w", err)
		}
	}

	return registration.Registration{
		ID:        data["id"],
		URL:       data["url"],
		Events:    events,
		Secret:    data["secret"],
		Headers:   headers,
		Active:    data["active"] == "1",
		CreatedAt: time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt: time.Unix(parseInt64(data["updated_at"]), 0),
	}, nil
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
