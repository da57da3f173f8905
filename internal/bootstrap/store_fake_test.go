package bootstrap

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// In-memory store for testing
// ────────────────────────────────────────────────

type fakeStore struct {
	name        string
	collections []string
	indexes     map[string][]IndexInfo
	docs        map[string][]any
	users       map[string]AppUser

	validatorUpdates []string
	userCreates      int
	userUpdates      int

	listErr            error
	createCollectionFn func(name string) error
	createIndexesErr   func(collection string) error
	updateValidatorErr error
	countErr           error
	insertErr          func(collection string) error
	userExistsErr      error
	createUserErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		name:    "flight_booking_db",
		indexes: make(map[string][]IndexInfo),
		docs:    make(map[string][]any),
		users:   make(map[string]AppUser),
	}
}

func (s *fakeStore) Name() string {
	return s.name
}

func (s *fakeStore) CollectionNames(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return slices.Clone(s.collections), nil
}

func (s *fakeStore) addCollection(name string) {
	if slices.Contains(s.collections, name) {
		return
	}
	s.collections = append(s.collections, name)
	s.indexes[name] = []IndexInfo{{Name: "_id_", Unique: true}}
}

func (s *fakeStore) CreateCollection(ctx context.Context, spec CollectionSpec) error {
	if s.createCollectionFn != nil {
		if err := s.createCollectionFn(spec.Name); err != nil {
			return err
		}
	}
	if slices.Contains(s.collections, spec.Name) {
		return mongo.CommandError{Code: codeNamespaceExists, Name: "NamespaceExists"}
	}
	s.addCollection(spec.Name)
	return nil
}

func (s *fakeStore) UpdateValidator(ctx context.Context, spec CollectionSpec) error {
	if s.updateValidatorErr != nil {
		return s.updateValidatorErr
	}
	s.validatorUpdates = append(s.validatorUpdates, spec.Name)
	return nil
}

func (s *fakeStore) CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) ([]string, error) {
	if s.createIndexesErr != nil {
		if err := s.createIndexesErr(collection); err != nil {
			return nil, err
		}
	}
	s.addCollection(collection)
	names := make([]string, 0, len(models))
	for _, model := range models {
		name := IndexName(model)
		if !slices.Contains(s.indexNames(collection), name) {
			s.indexes[collection] = append(s.indexes[collection], IndexInfo{Name: name, Unique: IsUnique(model)})
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *fakeStore) Indexes(ctx context.Context, collection string) ([]IndexInfo, error) {
	return slices.Clone(s.indexes[collection]), nil
}

func (s *fakeStore) indexNames(collection string) []string {
	names := make([]string, 0, len(s.indexes[collection]))
	for _, idx := range s.indexes[collection] {
		names = append(names, idx.Name)
	}
	return names
}

func (s *fakeStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.docs[collection])), nil
}

func (s *fakeStore) InsertMany(ctx context.Context, collection string, docs []any) (int, error) {
	if s.insertErr != nil {
		if err := s.insertErr(collection); err != nil {
			return 0, err
		}
	}
	s.docs[collection] = append(s.docs[collection], docs...)
	return len(docs), nil
}

func (s *fakeStore) UserExists(ctx context.Context, name string) (bool, error) {
	if s.userExistsErr != nil {
		return false, s.userExistsErr
	}
	_, ok := s.users[name]
	return ok, nil
}

func (s *fakeStore) CreateUser(ctx context.Context, user AppUser) error {
	if s.createUserErr != nil {
		return s.createUserErr
	}
	if _, ok := s.users[user.Name]; ok {
		return mongo.CommandError{Code: codeUserAlreadyExists, Name: "Location51003"}
	}
	s.users[user.Name] = user
	s.userCreates++
	return nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, user AppUser) error {
	s.users[user.Name] = user
	s.userUpdates++
	return nil
}

// snapshot captures the layout (not the data) of the store.
func (s *fakeStore) snapshot() map[string][]string {
	out := make(map[string][]string, len(s.collections))
	for _, name := range s.collections {
		idx := s.indexNames(name)
		slices.Sort(idx)
		out[name] = idx
	}
	return out
}
