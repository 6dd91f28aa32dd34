// Package mongostore implements the persistence gateway on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct{ raw *mongo.Client }

// NewClient connects using uri, falling back to MONGO_URI.
func NewClient(ctx context.Context, uri string) (*Client, error) {
	if uri == "" {
		uri = os.Getenv("MONGO_URI")
	}
	if uri == "" {
		return nil, errors.New("MONGO_URI is empty")
	}
	c, err := mongo.NewClient(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return &Client{raw: c}, nil
}

// DB returns the named database, defaulting to INTERVIEWS_DB_NAME or "intervai".
func (c *Client) DB(name string) (*mongo.Database, error) {
	if c == nil || c.raw == nil {
		return nil, errors.New("mongo client not initialized")
	}
	if name == "" {
		name = os.Getenv("INTERVIEWS_DB_NAME")
	}
	if name == "" {
		name = "intervai"
	}
	return c.raw.Database(name), nil
}

func (c *Client) Disconnect(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Disconnect(ctx)
}
