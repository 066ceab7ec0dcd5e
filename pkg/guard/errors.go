package guard

import "errors"

var ErrInvalidAreas = errors.New("invalid area table")
