package dto_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds/internal/dto"
)

func TestProductInput_CoercesNumericStrings(t *testing.T) {
	var in dto.ProductInput
	body := `{"productName":"Rice 5kg","description":"Staple","stock":"50","sellingPrice":"250.5","brandId":"65a1f0c2e4b0a1b2c3d4e5f6"}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	v := dto.NewValidator()
	require.NoError(t, v.Struct(in))

	p, err := in.ToModel()
	require.NoError(t, err)
	assert.Equal(t, int64(50), p.Stock)
	assert.Equal(t, 250.5, p.SellingPrice)
	assert.Equal(t, "Rice 5kg", p.ProductName)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", p.BrandID)
}

func TestProductInput_AcceptsJSONNumbers(t *testing.T) {
	var in dto.ProductInput
	body := `{"productName":"Wheat","description":"Atta","stock":12,"sellingPrice":40,"brandId":"b"}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	require.NoError(t, dto.NewValidator().Struct(in))

	p, err := in.ToModel()
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.Stock)
	assert.Equal(t, 40.0, p.SellingPrice)
}

func TestProductInput_Validation(t *testing.T) {
	v := dto.NewValidator()

	tests := []struct {
		name  string
		input dto.ProductInput
		field string
		tag   string
	}{
		{"missing name", dto.ProductInput{Description: "d", Stock: "1", SellingPrice: "1", BrandID: "b"}, "productName", "required"},
		{"missing brand", dto.ProductInput{ProductName: "p", Description: "d", Stock: "1", SellingPrice: "1"}, "brandId", "required"},
		{"negative stock", dto.ProductInput{ProductName: "p", Description: "d", Stock: "-1", SellingPrice: "1", BrandID: "b"}, "stock", "wholenumber"},
		{"fractional stock", dto.ProductInput{ProductName: "p", Description: "d", Stock: "2.5", SellingPrice: "1", BrandID: "b"}, "stock", "wholenumber"},
		{"negative price", dto.ProductInput{ProductName: "p", Description: "d", Stock: "1", SellingPrice: "-0.01", BrandID: "b"}, "sellingPrice", "nonnegative"},
		{"stock beyond int64", dto.ProductInput{ProductName: "p", Description: "d", Stock: "9223372036854775808", SellingPrice: "1", BrandID: "b"}, "stock", "wholenumber"},
		{"infinite price", dto.ProductInput{ProductName: "p", Description: "d", Stock: "1", SellingPrice: "1e400", BrandID: "b"}, "sellingPrice", "nonnegative"},
		{"price above ceiling", dto.ProductInput{ProductName: "p", Description: "d", Stock: "1", SellingPrice: "1000000000000.01", BrandID: "b"}, "sellingPrice", "nonnegative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}

	zero := dto.ProductInput{ProductName: "p", Description: "d", Stock: "0", SellingPrice: "0", BrandID: "b"}
	assert.NoError(t, v.Struct(zero))

	limits := dto.ProductInput{ProductName: "p", Description: "d", Stock: "9223372036854775807", SellingPrice: "1000000000000", BrandID: "b"}
	require.NoError(t, v.Struct(limits))
	p, err := limits.ToModel()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), p.Stock)
	assert.Equal(t, 1e12, p.SellingPrice)
}

func TestProductInput_ToModelRejectsOutOfRange(t *testing.T) {
	_, err := dto.ProductInput{Stock: "99999999999999999999", SellingPrice: "1"}.ToModel()
	assert.Error(t, err)

	_, err = dto.ProductInput{Stock: "1", SellingPrice: "1e400"}.ToModel()
	assert.Error(t, err)
}

func TestSignupInput_Validation(t *testing.T) {
	v := dto.NewValidator()
	valid := dto.SignupInput{
		Name:          "Asha",
		Email:         "asha@example.com",
		Password:      "secret1",
		PhoneNumber:   "9876543210",
		AadhaarNumber: "123412341234",
		ShopName:      "Fair Price Shop 12",
		ShopID:        "FPS-12",
		ShopAddress:   "MG Road",
		Latitude:      "12.971600",
		Longitude:     "77.594600",
	}
	require.NoError(t, v.Struct(valid))

	noAadhaar := valid
	noAadhaar.AadhaarNumber = ""
	assert.NoError(t, v.Struct(noAadhaar))

	badPhone := valid
	badPhone.PhoneNumber = "12345"
	assert.Error(t, v.Struct(badPhone))

	badLat := valid
	badLat.Latitude = "123.5"
	assert.Error(t, v.Struct(badLat))

	shortPassword := valid
	shortPassword.Password = "abc"
	assert.Error(t, v.Struct(shortPassword))

	// bcrypt only hashes the first 72 bytes.
	longPassword := valid
	longPassword.Password = strings.Repeat("x", 73)
	assert.Error(t, v.Struct(longPassword))

	loc, err := valid.Location()
	require.NoError(t, err)
	assert.Equal(t, "Point", loc.Type)
	assert.Equal(t, []float64{77.5946, 12.9716}, loc.Coordinates)
}
