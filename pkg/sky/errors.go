// Package sky holds the vocabulary shared between the layer controller
// and the catalog and image packages it drives: the error taxonomy, the
// per-layer parameters and the render request.
package sky

import "errors"

var (
	// ErrUnknownObject: the object identifier is not in the catalog.
	ErrUnknownObject = errors.New("unknown object")

	// ErrExhaustedPalette: more filters than there are colors to give them.
	ErrExhaustedPalette = errors.New("color palette exhausted")

	// ErrInvalidLayerParameter: a layer rejected a color, opacity or scaling value.
	ErrInvalidLayerParameter = errors.New("invalid layer parameter")

	// ErrFetchFailed: downloading a remote object's filter files failed.
	ErrFetchFailed = errors.New("fetch failed")
)
