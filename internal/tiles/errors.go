package tiles

import "github.com/pkg/errors"

var (
	// ErrInvalidCoordinate is returned for non-finite or out-of-range input points.
	ErrInvalidCoordinate = errors.New("tiles: invalid coordinate")
	// ErrInvalidZoom is returned when the zoom level is outside [0, spatial.MaxZoom].
	ErrInvalidZoom = errors.New("tiles: invalid zoom level")
	// ErrInvalidK is returned when the number of requested squares is not positive.
	ErrInvalidK = errors.New("tiles: k must be positive")
	// ErrInvalidDepth is returned when the planning horizon is not positive.
	ErrInvalidDepth = errors.New("tiles: depth must be positive")
	// ErrInvalidSquare is returned when a planner is seeded with an empty square.
	ErrInvalidSquare = errors.New("tiles: square size must be at least 1")
	// ErrInvalidOptions is returned for non-positive rasterizer distances.
	ErrInvalidOptions = errors.New("tiles: invalid options")
)
