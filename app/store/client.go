// Package store wraps the Redis connection that backs all per-user
// documents (profiles and favorites). A single Client is constructed in
// main and handed to every component that needs it; there is no hidden
// package-level handle.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared document-store handle.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection. A connection failure
// here is fatal to the application: the document store is the one external
// service the service cannot run without.
func New(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to document store at %s: %w", addr, err)
	}

	slog.Info("Connected to document store", "addr", addr, "db", db)

	return &Client{rdb: rdb}, nil
}

// Redis exposes the underlying connection for repository-style callers.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// ServerTime returns the store's clock. Creation timestamps on documents
// are server-assigned so ordering does not depend on application hosts
// agreeing on the time.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	t, err := c.rdb.Time(ctx).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read server time: %w", err)
	}
	return t, nil
}

// Ping reports connection health for the /health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
