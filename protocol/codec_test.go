package protocol

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Tick:      42,
		Positions: []uint32{0, 255, 128, 64, 3, 7},
		Scores:    []uint32{0, 512, 1023},
		DimX:      256,
		DimY:      256,
		SimDim:    1024,
	}
}

func TestAppendFrameLayout(t *testing.T) {
	b := AppendFrame(nil, testSnapshot())
	if len(b) != FrameSize(3) {
		t.Fatalf("len = %d, want %d", len(b), FrameSize(3))
	}
	if b[0] != FrameVersion || b[1] != 0 || b[2] != 0 || b[3] != 0 {
		t.Fatalf("bad header prefix % x", b[:4])
	}
	if n := binary.LittleEndian.Uint32(b[4:]); n != 3 {
		t.Fatalf("agent count = %d, want 3", n)
	}
	if tick := binary.LittleEndian.Uint64(b[8:]); tick != 42 {
		t.Fatalf("tick = %d, want 42", tick)
	}
	// second agent's y sits at header + 3 floats
	y1 := math.Float32frombits(binary.LittleEndian.Uint32(b[HeaderSize+12:]))
	if y1 != 0.25 {
		t.Fatalf("agent 1 y = %v, want 0.25", y1)
	}
}

func TestDecodeFrameRoundTrip(t *testing.T) {
	s := testSnapshot()
	f, err := DecodeFrame(AppendFrame(nil, s))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Tick != s.Tick || f.Version != FrameVersion {
		t.Fatalf("header = v%d tick %d", f.Version, f.Tick)
	}
	if f.AgentCount() != 3 || len(f.Positions) != 6 {
		t.Fatalf("decoded %d agents, %d coords", f.AgentCount(), len(f.Positions))
	}
	for i, p := range f.Positions {
		if p < 0 || p >= 1 {
			t.Fatalf("position %d = %v outside [0,1)", i, p)
		}
		dim := s.DimX
		if i%2 == 1 {
			dim = s.DimY
		}
		back := float64(p) * float64(dim)
		if math.Abs(back-float64(s.Positions[i])) > 1e-3 {
			t.Fatalf("position %d round-trips to %v, want %d", i, back, s.Positions[i])
		}
	}
	for i, sc := range f.Scores {
		if sc < 0 || sc >= 1 {
			t.Fatalf("score %d = %v outside [0,1)", i, sc)
		}
		back := float64(sc) * float64(s.SimDim)
		if math.Abs(back-float64(s.Scores[i])) > 1e-3 {
			t.Fatalf("score %d round-trips to %v, want %d", i, back, s.Scores[i])
		}
	}
}

func TestAppendFrameReusesBuffer(t *testing.T) {
	s := testSnapshot()
	buf := AppendFrame(nil, s)
	first := &buf[0]

	s.Tick++
	buf = AppendFrame(buf[:0], s)
	if &buf[0] != first {
		t.Fatalf("expected buffer reuse when capacity suffices")
	}
	f, err := DecodeFrame(buf)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Tick != 43 {
		t.Fatalf("tick = %d, want 43", f.Tick)
	}
}

func TestAppendFrameGrowsSmallBuffer(t *testing.T) {
	s := testSnapshot()
	small := make([]byte, 0, 4)
	b := AppendFrame(small, s)
	if len(b) != FrameSize(3) {
		t.Fatalf("len = %d, want %d", len(b), FrameSize(3))
	}
	if _, err := DecodeFrame(b); err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
}

func TestAppendFrameKeepsPrefix(t *testing.T) {
	b := AppendFrame([]byte{0xAA}, testSnapshot())
	if b[0] != 0xAA || len(b) != 1+FrameSize(3) {
		t.Fatalf("prefix lost: len=%d first=%x", len(b), b[0])
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	good := AppendFrame(nil, testSnapshot())

	badVersion := append([]byte(nil), good...)
	badVersion[0] = 9

	cases := []struct {
		name string
		b    []byte
		want error
	}{
		{"empty", nil, ErrShortFrame},
		{"short header", good[:HeaderSize-1], ErrShortFrame},
		{"version", badVersion, ErrFrameVersion},
		{"truncated", good[:len(good)-1], ErrFrameLength},
		{"trailing", append(append([]byte(nil), good...), 0), ErrFrameLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeFrame(tc.b)
			if !errors.Is(err, tc.want) {
				t.Fatalf("DecodeFrame() err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestTopScoreStaysBelowOne(t *testing.T) {
	const simDim = 1 << 24 // widest ceiling sim.Params accepts
	s := Snapshot{
		Positions: []uint32{0, 0, 0, 0},
		Scores:    []uint32{simDim - 1, simDim / 2},
		DimX:      1,
		DimY:      1,
		SimDim:    simDim,
	}
	f, err := DecodeFrame(AppendFrame(nil, s))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Scores[0] >= 1 {
		t.Fatalf("score %d/%d normalized to %v, want < 1", s.Scores[0], simDim, f.Scores[0])
	}
	if f.Scores[1] != 0.5 {
		t.Fatalf("half score = %v, want 0.5", f.Scores[1])
	}
}
