package model

import "errors"

// ErrNotFound is returned by repositories when no record exists for the
// requested key.
var ErrNotFound = errors.New("record not found")
