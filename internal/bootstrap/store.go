package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flightdb/internal/bootstrap/validators"
)

// AppUser is the role-scoped credential the application connects with.
type AppUser struct {
	Name     string
	Password string
	Role     string
}

// IndexInfo is the part of an existing index that verification compares.
type IndexInfo struct {
	Name   string
	Unique bool
}

// Store is the set of database primitives the bootstrap routine is built on.
type Store interface {
	Name() string
	CollectionNames(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, spec CollectionSpec) error
	UpdateValidator(ctx context.Context, spec CollectionSpec) error
	CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) ([]string, error)
	Indexes(ctx context.Context, collection string) ([]IndexInfo, error)
	CountDocuments(ctx context.Context, collection string) (int64, error)
	InsertMany(ctx context.Context, collection string, docs []any) (int, error)
	UserExists(ctx context.Context, name string) (bool, error)
	CreateUser(ctx context.Context, user AppUser) error
	UpdateUser(ctx context.Context, user AppUser) error
}

type mongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{db: db}
}

func (s *mongoStore) Name() string {
	return s.db.Name()
}

func (s *mongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

func (s *mongoStore) CreateCollection(ctx context.Context, spec CollectionSpec) error {
	opts := options.CreateCollection()
	if spec.Validator != nil {
		opts.SetValidator(spec.Validator).
			SetValidationLevel(validators.ValidationLevel).
			SetValidationAction(validators.ValidationAction)
	}
	if err := s.db.CreateCollection(ctx, spec.Name, opts); err != nil {
		return fmt.Errorf("failed creating %s: %w", spec.Name, err)
	}
	return nil
}

func (s *mongoStore) UpdateValidator(ctx context.Context, spec CollectionSpec) error {
	if spec.Validator == nil {
		return nil
	}
	command := bson.D{
		{Key: "collMod", Value: spec.Name},
		{Key: "validator", Value: spec.Validator},
		{Key: "validationLevel", Value: validators.ValidationLevel},
		{Key: "validationAction", Value: validators.ValidationAction},
	}
	if err := s.db.RunCommand(ctx, command).Err(); err != nil {
		return fmt.Errorf("failed updating validator for %s: %w", spec.Name, err)
	}
	return nil
}

func (s *mongoStore) CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) ([]string, error) {
	if len(models) == 0 {
		return nil, nil
	}
	names, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		return nil, fmt.Errorf("failed creating indexes on %s: %w", collection, err)
	}
	return names, nil
}

func (s *mongoStore) Indexes(ctx context.Context, collection string) ([]IndexInfo, error) {
	specs, err := s.db.Collection(collection).Indexes().ListSpecifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed listing indexes on %s: %w", collection, err)
	}
	indexes := make([]IndexInfo, 0, len(specs))
	for _, spec := range specs {
		indexes = append(indexes, IndexInfo{
			Name:   spec.Name,
			Unique: spec.Unique != nil && *spec.Unique,
		})
	}
	return indexes, nil
}

func (s *mongoStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed counting %s: %w", collection, err)
	}
	return count, nil
}

func (s *mongoStore) InsertMany(ctx context.Context, collection string, docs []any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	res, err := s.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed inserting into %s: %w", collection, err)
	}
	return len(res.InsertedIDs), nil
}

type usersInfoResult struct {
	Users []bson.M `bson:"users"`
}

func (s *mongoStore) UserExists(ctx context.Context, name string) (bool, error) {
	var result usersInfoResult
	command := bson.D{{Key: "usersInfo", Value: name}}
	if err := s.db.RunCommand(ctx, command).Decode(&result); err != nil {
		return false, fmt.Errorf("failed looking up user %s: %w", name, err)
	}
	return len(result.Users) > 0, nil
}

func (s *mongoStore) CreateUser(ctx context.Context, user AppUser) error {
	command := bson.D{
		{Key: "createUser", Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: s.roles(user)},
	}
	if err := s.db.RunCommand(ctx, command).Err(); err != nil {
		return fmt.Errorf("failed creating user %s: %w", user.Name, err)
	}
	return nil
}

func (s *mongoStore) UpdateUser(ctx context.Context, user AppUser) error {
	command := bson.D{
		{Key: "updateUser", Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: s.roles(user)},
	}
	if err := s.db.RunCommand(ctx, command).Err(); err != nil {
		return fmt.Errorf("failed updating user %s: %w", user.Name, err)
	}
	return nil
}

func (s *mongoStore) roles(user AppUser) bson.A {
	return bson.A{
		bson.D{
			{Key: "role", Value: user.Role},
			{Key: "db", Value: s.db.Name()},
		},
	}
}
