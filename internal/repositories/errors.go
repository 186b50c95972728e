package repositories

import "errors"

var ErrNotFound = errors.New("document not found")
var ErrDuplicate = errors.New("duplicate key")
