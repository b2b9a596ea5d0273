package tiles

import (
	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/pkg/errors"
)

// Defaults used by the reference deployment.
const (
	DefaultZoom               = 14
	DefaultTopK               = 3
	DefaultDepth              = 3
	DefaultGapThresholdMeters = 50.0
	DefaultStepMeters         = 30.0
)

// Options holds the knobs of one analysis pass.
type Options struct {
	Zoom               int     `json:"zoom"`
	TopK               int     `json:"top_k"`
	Depth              int     `json:"depth"`
	GapThresholdMeters float64 `json:"gap_threshold_m"`
	StepMeters         float64 `json:"step_m"`
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Zoom:               DefaultZoom,
		TopK:               DefaultTopK,
		Depth:              DefaultDepth,
		GapThresholdMeters: DefaultGapThresholdMeters,
		StepMeters:         DefaultStepMeters,
	}
}

// Validate checks every knob.
func (o Options) Validate() error {
	if err := o.validateRaster(); err != nil {
		return err
	}
	if o.TopK <= 0 {
		return errors.Wrapf(ErrInvalidK, "top_k=%d", o.TopK)
	}
	if o.Depth <= 0 {
		return errors.Wrapf(ErrInvalidDepth, "depth=%d", o.Depth)
	}
	return nil
}

func (o Options) validateRaster() error {
	if o.Zoom < 0 || o.Zoom > spatial.MaxZoom {
		return errors.Wrapf(ErrInvalidZoom, "zoom %d", o.Zoom)
	}
	if !(o.GapThresholdMeters > 0) {
		return errors.Wrapf(ErrInvalidOptions, "gap threshold %v", o.GapThresholdMeters)
	}
	if !(o.StepMeters > 0) {
		return errors.Wrapf(ErrInvalidOptions, "interpolation step %v", o.StepMeters)
	}
	return nil
}
