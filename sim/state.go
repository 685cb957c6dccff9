package sim

import (
	"errors"
	"fmt"
)

var (
	ErrNoAgents = errors.New("agent count must be positive")
	ErrSimDim   = errors.New("sim dim out of range")
	ErrScale    = errors.New("scale out of range")
)

// Source is the random draw used for initialization and stepping.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Params sizes one simulation instance.
type Params struct {
	AgentCount uint32
	SimDim     uint32 // score ceiling and normalization denominator
	ScaleX     uint8  // x axis size is 1<<ScaleX
	ScaleY     uint8
}

func DefaultParams() Params {
	return Params{
		AgentCount: DefaultAgentCount,
		SimDim:     DefaultSimDim,
		ScaleX:     DefaultScaleX,
		ScaleY:     DefaultScaleY,
	}
}

func (p Params) Validate() error {
	if p.AgentCount == 0 {
		return ErrNoAgents
	}
	if p.SimDim == 0 || p.SimDim > MaxSimDim {
		return fmt.Errorf("%w: sim_dim=%d max=%d", ErrSimDim, p.SimDim, MaxSimDim)
	}
	if p.ScaleX > MaxScale {
		return fmt.Errorf("%w: scale_x=%d max=%d", ErrScale, p.ScaleX, MaxScale)
	}
	if p.ScaleY > MaxScale {
		return fmt.Errorf("%w: scale_y=%d max=%d", ErrScale, p.ScaleY, MaxScale)
	}
	return nil
}

func (p Params) DimX() uint32 { return 1 << p.ScaleX }
func (p Params) DimY() uint32 { return 1 << p.ScaleY }

// Agents holds the live state of one simulation.
// Positions is flat: agent i is at (Positions[2i], Positions[2i+1]).
// Scores are fixed once NewAgents returns.
type Agents struct {
	DimX, DimY uint32
	SimDim     uint32
	Positions  []uint32
	Scores     []uint32
}

func NewAgents(p Params, src Source) (*Agents, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	a := &Agents{
		DimX:      p.DimX(),
		DimY:      p.DimY(),
		SimDim:    p.SimDim,
		Positions: make([]uint32, 2*int(p.AgentCount)),
		Scores:    make([]uint32, int(p.AgentCount)),
	}
	for i := range a.Scores {
		a.Positions[2*i] = uint32(src.IntN(int(a.DimX)))
		a.Positions[2*i+1] = uint32(src.IntN(int(a.DimY)))
		a.Scores[i] = uint32(src.IntN(int(a.SimDim)))
	}
	return a, nil
}

func (a *Agents) Len() int { return len(a.Scores) }

func (a *Agents) Position(i int) (x, y uint32) {
	return a.Positions[2*i], a.Positions[2*i+1]
}
