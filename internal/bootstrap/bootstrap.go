// Package bootstrap prepares the flight booking database: collections, indexes,
// the application user and the static seed data.
//
// Every step is safe to repeat. Existing collections, indexes and users are kept,
// and seed data is inserted only into empty collections.
package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"flightdb/pkg/kafka"
	"flightdb/pkg/logger"
)

// Server error codes the routine tolerates when another run got there first.
const (
	codeNamespaceExists   = 48
	codeUserAlreadyExists = 51003
)

// Options selects the optional steps. A nil AppUser or Seed skips that step.
type Options struct {
	AppUser  *AppUser
	Seed     *Seed
	Notifier Notifier
}

// Result summarises one run.
type Result struct {
	RunID               string              `json:"run_id"`
	Database            string              `json:"database"`
	CollectionsCreated  []string            `json:"collections_created"`
	CollectionsExisting []string            `json:"collections_existing"`
	Indexes             map[string][]string `json:"indexes"`
	UserCreated         bool                `json:"user_created"`
	UserUpdated         bool                `json:"user_updated"`
	PlacesInserted      int                 `json:"places_inserted"`
	WeekDaysInserted    int                 `json:"weekdays_inserted"`
	StartedAt           time.Time           `json:"started_at"`
	DurationMs          int64               `json:"duration_ms"`
}

type Bootstrapper struct {
	store Store
	log   *logger.Logger
	opts  Options
}

func New(store Store, log *logger.Logger, opts Options) *Bootstrapper {
	return &Bootstrapper{
		store: store,
		log:   log,
		opts:  opts,
	}
}

// Run executes every step in order and stops at the first failure. The partial
// result is returned alongside the error.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		Database:  b.store.Name(),
		Indexes:   make(map[string][]string),
		StartedAt: time.Now().UTC(),
	}
	log := b.log.WithRun(result.RunID)
	log.Info("Starting database bootstrap", "database", result.Database)

	if err := b.ensureCollectionsAndIndexes(ctx, log, result); err != nil {
		return result, err
	}

	if b.opts.AppUser != nil {
		if err := b.ensureAppUser(ctx, log, result); err != nil {
			return result, stepErr(StepAppUser, err)
		}
	} else {
		log.Info("Application user provisioning disabled")
	}

	if b.opts.Seed != nil {
		n, err := b.seedIfEmpty(ctx, log, PlacesCollection, b.opts.Seed.placeDocs())
		if err != nil {
			return result, stepErr(StepSeedPlaces, err)
		}
		result.PlacesInserted = n

		n, err = b.seedIfEmpty(ctx, log, WeekCollection, b.opts.Seed.weekDayDocs())
		if err != nil {
			return result, stepErr(StepSeedWeek, err)
		}
		result.WeekDaysInserted = n
	} else {
		log.Info("Seeding disabled")
	}

	result.DurationMs = time.Since(result.StartedAt).Milliseconds()
	log.Info("Database bootstrap completed",
		"database", result.Database,
		"collections_created", len(result.CollectionsCreated),
		"user_created", result.UserCreated,
		"user_updated", result.UserUpdated,
		"places_inserted", result.PlacesInserted,
		"weekdays_inserted", result.WeekDaysInserted,
		"duration_ms", result.DurationMs,
	)

	b.notify(ctx, log, result)
	return result, nil
}

func (b *Bootstrapper) ensureCollectionsAndIndexes(ctx context.Context, log *logger.Logger, result *Result) error {
	names, err := b.store.CollectionNames(ctx)
	if err != nil {
		return stepErr(StepCollections, err)
	}
	existing := make(map[string]struct{}, len(names))
	for _, name := range names {
		existing[name] = struct{}{}
	}

	for _, spec := range Collections() {
		created, err := b.ensureCollection(ctx, log, spec, existing)
		if err != nil {
			return stepErr(StepCollections, err)
		}
		if created {
			result.CollectionsCreated = append(result.CollectionsCreated, spec.Name)
		} else {
			result.CollectionsExisting = append(result.CollectionsExisting, spec.Name)
		}

		indexNames, err := b.store.CreateIndexes(ctx, spec.Name, spec.Indexes)
		if err != nil {
			return stepErr(StepIndexes, err)
		}
		result.Indexes[spec.Name] = indexNames
		log.Info("Ensured indexes", "collection", spec.Name, "indexes", indexNames)
	}
	return nil
}

func (b *Bootstrapper) ensureCollection(ctx context.Context, log *logger.Logger, spec CollectionSpec, existing map[string]struct{}) (bool, error) {
	if _, ok := existing[spec.Name]; !ok {
		log.Info("Creating collection", "collection", spec.Name)
		err := b.store.CreateCollection(ctx, spec)
		if err == nil {
			return true, nil
		}
		if !hasServerCode(err, codeNamespaceExists) {
			return false, err
		}
		log.Info("Collection was created concurrently", "collection", spec.Name)
	}

	if spec.Validator != nil {
		if err := b.store.UpdateValidator(ctx, spec); err != nil {
			log.Warn("Failed updating validator", "collection", spec.Name, "error", err)
		}
	}
	return false, nil
}

func (b *Bootstrapper) ensureAppUser(ctx context.Context, log *logger.Logger, result *Result) error {
	user := *b.opts.AppUser

	exists, err := b.store.UserExists(ctx, user.Name)
	if err != nil {
		return err
	}

	if !exists {
		log.Info("Creating application user", "user", user.Name, "role", user.Role)
		err := b.store.CreateUser(ctx, user)
		if err == nil {
			result.UserCreated = true
			return nil
		}
		if !hasServerCode(err, codeUserAlreadyExists) {
			return err
		}
	}

	log.Info("Updating application user", "user", user.Name, "role", user.Role)
	if err := b.store.UpdateUser(ctx, user); err != nil {
		return err
	}
	result.UserUpdated = true
	return nil
}

func (b *Bootstrapper) seedIfEmpty(ctx context.Context, log *logger.Logger, collection string, docs []any) (int, error) {
	count, err := b.store.CountDocuments(ctx, collection)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info("Collection not empty, skipping seed", "collection", collection, "documents", count)
		return 0, nil
	}

	log.Info("Inserting seed data", "collection", collection, "documents", len(docs))
	n, err := b.store.InsertMany(ctx, collection, docs)
	if err != nil {
		return n, err
	}
	log.Info("Seed data inserted", "collection", collection, "inserted", n)
	return n, nil
}

func (b *Bootstrapper) notify(ctx context.Context, log *logger.Logger, result *Result) {
	if b.opts.Notifier == nil {
		return
	}
	if err := b.opts.Notifier.Notify(ctx, result); err != nil {
		log.Warn("Failed to publish bootstrap event", "error", err, "permanent", kafka.IsPermanent(err))
	}
}

func hasServerCode(err error, code int32) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == code
	}
	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.HasErrorCode(int(code))
	}
	return false
}
