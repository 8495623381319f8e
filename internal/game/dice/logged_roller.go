package dice

import "go.uber.org/zap"

// Roller is the production Rand: it draws from a Source and logs every draw
// at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// UniformInt returns an int in [min, max] and logs the draw.
func (r *Roller) UniformInt(min, max int) int {
	v := Between(r.src, min, max)
	r.logger.Debug("uniform roll",
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("result", v),
	)
	return v
}
