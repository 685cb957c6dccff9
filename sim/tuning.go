package sim

const (
	MaxScale     = 16 // widest axis is 1<<16, fits uint32 coordinates
	BumpRange    = 5  // per-tick step magnitude is drawn from [0, BumpRange)
	DirectionMod = 4  // agent i drifts towards quadrant i%DirectionMod

	// MaxSimDim keeps score/SimDim below 1 after float32 rounding.
	MaxSimDim = 1 << 24
)

const (
	DefaultAgentCount = 1024
	DefaultSimDim     = 1024
	DefaultScaleX     = 8
	DefaultScaleY     = 8
)
