package store

import (
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
)

// FirebaseClient adapts a Realtime Database client to the Client interface.
type FirebaseClient struct {
	db *db.Client
}

// NewFirebaseClient opens the Realtime Database of an initialized app.
func NewFirebaseClient(ctx context.Context, app *firebase.App, databaseURL string) (*FirebaseClient, error) {
	client, err := app.DatabaseWithURL(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting realtime database: %w", err)
	}
	return &FirebaseClient{db: client}, nil
}

// Get reads the node at path. The database reports an absent node as JSON
// null rather than an error, so the raw payload is probed before decoding.
func (c *FirebaseClient) Get(ctx context.Context, path string, v interface{}) error {
	var raw json.RawMessage
	if err := c.db.NewRef(path).Get(ctx, &raw); err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *FirebaseClient) Set(ctx context.Context, path string, v interface{}) error {
	if err := c.db.NewRef(path).Set(ctx, v); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (c *FirebaseClient) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := c.db.NewRef(path).Update(ctx, fields); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

func (c *FirebaseClient) Delete(ctx context.Context, path string) error {
	if err := c.db.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (c *FirebaseClient) Push(ctx context.Context, path string, v interface{}) (string, error) {
	ref, err := c.db.NewRef(path).Push(ctx, v)
	if err != nil {
		return "", fmt.Errorf("push %s: %w", path, err)
	}
	return ref.Key, nil
}
