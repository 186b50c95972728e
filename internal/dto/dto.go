package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"pds/internal/models"
)

// BrandInput is the body of brand create and update requests.
type BrandInput struct {
	BrandName   string `json:"brandName" form:"brandName" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
}

// ToModel converts the input into a Brand without an id.
func (in BrandInput) ToModel() models.Brand {
	return models.Brand{
		BrandName:   in.BrandName,
		Description: in.Description,
	}
}

// MaxSellingPrice is the largest accepted selling price.
const MaxSellingPrice = 1e12

var (
	maxStock = decimal.NewFromInt(math.MaxInt64)
	maxPrice = decimal.NewFromFloat(MaxSellingPrice)
)

// ProductInput is the body of product create and update requests.
// Stock and SellingPrice accept JSON numbers as well as numeric strings.
type ProductInput struct {
	ProductName  string      `json:"productName" form:"productName" validate:"required"`
	Description  string      `json:"description" form:"description" validate:"required"`
	Stock        json.Number `json:"stock" form:"stock" validate:"required,wholenumber"`
	SellingPrice json.Number `json:"sellingPrice" form:"sellingPrice" validate:"required,nonnegative"`
	BrandID      string      `json:"brandId" form:"brandId" validate:"required"`
}

// ToModel coerces the numeric fields and converts the input into a Product.
func (in ProductInput) ToModel() (models.Product, error) {
	stock, err := decimal.NewFromString(in.Stock.String())
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid stock %q: %w", in.Stock, err)
	}
	if !inStockRange(stock) {
		return models.Product{}, fmt.Errorf("stock %q out of range", in.Stock)
	}
	price, err := decimal.NewFromString(in.SellingPrice.String())
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid selling price %q: %w", in.SellingPrice, err)
	}
	if !inPriceRange(price) {
		return models.Product{}, fmt.Errorf("selling price %q out of range", in.SellingPrice)
	}

	return models.Product{
		ProductName:  in.ProductName,
		Description:  in.Description,
		Stock:        stock.IntPart(),
		SellingPrice: price.InexactFloat64(),
		BrandID:      in.BrandID,
	}, nil
}

// SignupInput is the flattened multi-step signup form.
type SignupInput struct {
	Name          string      `json:"name" form:"name" validate:"required"`
	Email         string      `json:"email" form:"email" validate:"required,email"`
	Password      string      `json:"password" form:"password" validate:"required,min=6,max=72"`
	PhoneNumber   string      `json:"phoneNumber" form:"phoneNumber" validate:"required,number,len=10"`
	AadhaarNumber string      `json:"aadhaarNumber" form:"aadhaarNumber" validate:"omitempty,number,len=12"`
	ShopName      string      `json:"shopName" form:"shopName" validate:"required"`
	ShopID        string      `json:"shopId" form:"shopId" validate:"required"`
	ShopAddress   string      `json:"shopAddress" form:"shopAddress"`
	Latitude      json.Number `json:"latitude" form:"latitude" validate:"required,latitude"`
	Longitude     json.Number `json:"longitude" form:"longitude" validate:"required,longitude"`
}

// Location returns the shop location as a GeoJSON point.
func (in SignupInput) Location() (models.GeoPoint, error) {
	lat, err := in.Latitude.Float64()
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("invalid latitude %q: %w", in.Latitude, err)
	}
	lng, err := in.Longitude.Float64()
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("invalid longitude %q: %w", in.Longitude, err)
	}
	return models.NewGeoPoint(lat, lng), nil
}

// NewValidator returns a validator that knows the custom numeric tags and
// reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("nonnegative", isNonNegative)
	_ = v.RegisterValidation("wholenumber", isWholeNumber)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// isNonNegative accepts prices from 0 up to MaxSellingPrice.
func isNonNegative(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && inPriceRange(d)
}

// isWholeNumber accepts integers from 0 up to math.MaxInt64.
func isWholeNumber(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsInteger() && inStockRange(d)
}

func inStockRange(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxStock)
}

func inPriceRange(d decimal.Decimal) bool {
	if d.IsNegative() || d.GreaterThan(maxPrice) {
		return false
	}
	f := d.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
