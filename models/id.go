package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh ObjectID hex string. Both storage backends use the
// same id format so records keep their ids across backends.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
