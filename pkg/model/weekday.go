package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// WeekDay numbers days ISO style, Monday is 1 and Sunday is 7.
type WeekDay struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty" yaml:"-"`
	Number int                `bson:"number" json:"number" yaml:"number" validate:"min=1,max=7"`
	Name   string             `bson:"name" json:"name" yaml:"name" validate:"required,max=16"`
}
