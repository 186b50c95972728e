package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleShopkeeper = "shopkeeper"
	StatusPending  = "pending"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a point from a latitude/longitude pair.
func NewGeoPoint(latitude, longitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

// Shopkeeper is a registered PDS shop owner account, stored in the users collection.
type Shopkeeper struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"` // bcrypt hash
	PhoneNumber   string             `json:"phoneNumber" bson:"phoneNumber"`
	AadhaarNumber string             `json:"aadhaarNumber,omitempty" bson:"aadhaarNumber,omitempty"`
	ShopName      string             `json:"shopName" bson:"shopName"`
	ShopID        string             `json:"shopId" bson:"shopId"`
	ShopAddress   string             `json:"shopAddress" bson:"shopAddress"`
	Location      GeoPoint           `json:"location" bson:"location"`
	Role          string             `json:"role" bson:"role"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
