package validators

import "go.mongodb.org/mongo-driver/bson"

var PlaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"city", "airport", "code", "country"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":     bson.M{"bsonType": "objectId"},
			"city":    bson.M{"bsonType": "string", "maxLength": 64},
			"airport": bson.M{"bsonType": "string", "maxLength": 64},
			"code": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},
			"country": bson.M{"bsonType": "string", "maxLength": 64},
		},
	},
}
