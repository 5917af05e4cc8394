package chat

import "errors"

var ErrInvalidCatalog = errors.New("invalid question catalog")
