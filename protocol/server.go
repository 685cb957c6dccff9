package protocol

// Snapshot borrows the agent tables of one tick for encoding.
// Positions has 2*len(Scores) entries, x then y per agent.
type Snapshot struct {
	Tick       uint64
	Positions  []uint32
	Scores     []uint32
	DimX, DimY uint32
	SimDim     uint32
}

// Frame is a decoded wire frame.
type Frame struct {
	Version   uint8
	Tick      uint64
	Positions []float32
	Scores    []float32
}

func (f Frame) AgentCount() int { return len(f.Scores) }
