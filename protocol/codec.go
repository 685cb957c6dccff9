package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	ErrShortFrame   = errors.New("frame shorter than header")
	ErrFrameVersion = errors.New("unsupported frame version")
	ErrFrameLength  = errors.New("frame length does not match agent count")
)

func FrameSize(agents int) int {
	return HeaderSize + 3*agents*floatSize
}

// AppendFrame appends the encoded snapshot to dst and returns the extended
// buffer. Pass buf[:0] from the previous tick to reuse its capacity; dst is
// grown when it is too small, never truncated.
func AppendFrame(dst []byte, s Snapshot) []byte {
	n := len(s.Scores)
	dst = slices.Grow(dst, FrameSize(n))

	dst = append(dst, FrameVersion, 0, 0, 0)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(n))
	dst = binary.LittleEndian.AppendUint64(dst, s.Tick)

	fx := float32(s.DimX)
	fy := float32(s.DimY)
	for i := 0; i < n; i++ {
		dst = appendFloat(dst, float32(s.Positions[2*i])/fx)
		dst = appendFloat(dst, float32(s.Positions[2*i+1])/fy)
	}

	fs := float32(s.SimDim)
	for _, sc := range s.Scores {
		dst = appendFloat(dst, float32(sc)/fs)
	}
	return dst
}

func appendFloat(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

func DecodeFrame(b []byte) (Frame, error) {
	if len(b) < HeaderSize {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(b))
	}
	if b[0] != FrameVersion {
		return Frame{}, fmt.Errorf("%w: %d", ErrFrameVersion, b[0])
	}
	n := int(binary.LittleEndian.Uint32(b[4:8]))
	if len(b) != FrameSize(n) {
		return Frame{}, fmt.Errorf("%w: %d agents need %d bytes, got %d", ErrFrameLength, n, FrameSize(n), len(b))
	}

	f := Frame{
		Version:   b[0],
		Tick:      binary.LittleEndian.Uint64(b[8:16]),
		Positions: make([]float32, 2*n),
		Scores:    make([]float32, n),
	}
	off := HeaderSize
	for i := range f.Positions {
		f.Positions[i] = readFloat(b[off:])
		off += floatSize
	}
	for i := range f.Scores {
		f.Scores[i] = readFloat(b[off:])
		off += floatSize
	}
	return f, nil
}

func readFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
