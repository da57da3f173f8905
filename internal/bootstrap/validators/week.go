package validators

import "go.mongodb.org/mongo-driver/bson"

var WeekValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"number", "name"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"number": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  7,
			},
			"name": bson.M{"bsonType": "string", "maxLength": 16},
		},
	},
}
