package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Place is an airport a flight can depart from or arrive at.
type Place struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty" yaml:"-"`
	City    string             `bson:"city" json:"city" yaml:"city" validate:"required,max=64"`
	Airport string             `bson:"airport" json:"airport" yaml:"airport" validate:"required,max=64"`
	Code    string             `bson:"code" json:"code" yaml:"code" validate:"required,len=3,alpha,uppercase"`
	Country string             `bson:"country" json:"country" yaml:"country" validate:"required,max=64"`
}
