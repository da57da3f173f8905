// Package status reports whether the flight booking database is reachable and
// bootstrapped, over HTTP and as Prometheus metrics.
package status

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"flightdb/internal/bootstrap"
)

type Checker interface {
	Database() string
	Ping(ctx context.Context) error
	Report(ctx context.Context) (*bootstrap.Report, error)
}

type mongoChecker struct {
	client *mongo.Client
	store  bootstrap.Store
}

func NewMongoChecker(client *mongo.Client, store bootstrap.Store) Checker {
	return &mongoChecker{client: client, store: store}
}

func (c *mongoChecker) Database() string {
	return c.store.Name()
}

func (c *mongoChecker) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *mongoChecker) Report(ctx context.Context) (*bootstrap.Report, error) {
	return bootstrap.Verify(ctx, c.store)
}
