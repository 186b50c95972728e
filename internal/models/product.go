package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a stocked item in the shop inventory.
type Product struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProductName  string             `json:"productName" bson:"productName"`
	Description  string             `json:"description" bson:"description"`
	Stock        int64              `json:"stock" bson:"stock"`
	SellingPrice float64            `json:"sellingPrice" bson:"sellingPrice"`
	BrandID      string             `json:"brandId" bson:"brandId"` // not checked against brands
	UpdatedAt    *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
