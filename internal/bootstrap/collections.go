package bootstrap

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flightdb/internal/bootstrap/validators"
)

const (
	UsersCollection      = "flight_user"
	PlacesCollection     = "flight_place"
	FlightsCollection    = "flight_flight"
	TicketsCollection    = "flight_ticket"
	PassengersCollection = "flight_passenger"
	WeekCollection       = "flight_week"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	PlacesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "country", Value: 1}}},
	}

	FlightsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "origin", Value: 1}, {Key: "destination", Value: 1}}},
		{Keys: bson.D{{Key: "departure_date", Value: 1}}},
		{Keys: bson.D{{Key: "arrival_date", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "flight_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "airline", Value: 1}}},
		{Keys: bson.D{{Key: "economy_fare", Value: 1}}},
	}

	TicketsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "ref_no", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "booking_date", Value: 1}}},
	}

	PassengersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "ticket", Value: 1}}},
	}

	WeekIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
)

// CollectionSpec declares one collection, its indexes and its optional advisory validator.
type CollectionSpec struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection in creation order.
func Collections() []CollectionSpec {
	return []CollectionSpec{
		{Name: UsersCollection, Indexes: UsersIndexes},
		{Name: PlacesCollection, Indexes: PlacesIndexes, Validator: validators.PlaceValidator},
		{Name: FlightsCollection, Indexes: FlightsIndexes},
		{Name: TicketsCollection, Indexes: TicketsIndexes},
		{Name: PassengersCollection, Indexes: PassengersIndexes},
		{Name: WeekCollection, Indexes: WeekIndexes, Validator: validators.WeekValidator},
	}
}

// IndexNames returns the server-assigned names of the collection's indexes.
func (s CollectionSpec) IndexNames() []string {
	names := make([]string, 0, len(s.Indexes))
	for _, model := range s.Indexes {
		names = append(names, IndexName(model))
	}
	return names
}

// IndexName returns the explicit name of an index model, or the name the server
// derives from its keys ("origin_1_destination_1").
func IndexName(model mongo.IndexModel) string {
	if model.Options != nil && model.Options.Name != nil {
		return *model.Options.Name
	}
	keys, ok := model.Keys.(bson.D)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		parts = append(parts, key.Key, fmt.Sprint(key.Value))
	}
	return strings.Join(parts, "_")
}

// IsUnique reports whether the index model enforces uniqueness.
func IsUnique(model mongo.IndexModel) bool {
	return model.Options != nil && model.Options.Unique != nil && *model.Options.Unique
}
