package protocol

import "time"

// Frame layout, version 1. All integers little-endian, floats IEEE-754
// float32, sections 4-byte aligned so a browser can view them as
// Float32Array without copying.
//
//	offset  size  field
//	0       1     version
//	1       3     reserved (zero)
//	4       4     agent count N
//	8       8     tick index
//	16      8N    positions: x0 y0 x1 y1 ... each coord/dim in [0,1)
//	16+8N   4N    scores: each score/simDim in [0,1)
//
// Bump FrameVersion whenever this layout changes.
const (
	FrameVersion = 1
	HeaderSize   = 16
	floatSize    = 4
)

const TickInterval = 30 * time.Millisecond
