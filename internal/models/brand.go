package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Brand groups products sold by a shop.
type Brand struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	BrandName   string             `json:"brandName" bson:"brandName"`
	Description string             `json:"description" bson:"description"`
}
