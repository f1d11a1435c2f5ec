// Package layer implements the annotation data model: shapes, named layers
// and the layer registry.
package layer

import "errors"

var (
	// ErrNotFound is returned when a layer name is not registered.
	ErrNotFound = errors.New("layer not found")
	// ErrDuplicateKey is returned when a layer name or shape is registered twice.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignShape is returned when adding a shape owned by another layer.
	ErrForeignShape = errors.New("shape belongs to another layer")
)
