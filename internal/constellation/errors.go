package constellation

import "errors"

var (
	// ErrInvalidConstellationIndex means a toggle named a constellation outside the registry.
	ErrInvalidConstellationIndex = errors.New("invalid constellation index")

	// ErrMissingCatalogEntry means a vertex or edge endpoint is not in the catalog.
	ErrMissingCatalogEntry = errors.New("missing catalog entry")

	// ErrInvalidSizeBounds means a display size range was rejected.
	ErrInvalidSizeBounds = errors.New("invalid size bounds")
)
