package services

import (
	"errors"

	"pds/internal/repositories"
)

var (
	ErrNotFound = repositories.ErrNotFound

	ErrEmailTaken        = errors.New("user with this email already exists")
	ErrShopIDTaken       = errors.New("shop ID already registered")
	ErrAlreadyRegistered = errors.New("shopkeeper already registered")
)
