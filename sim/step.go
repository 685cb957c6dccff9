package sim

// Step moves every agent one bounded random step. Agents drift by index:
// i%4 == 0 goes +x+y, 1 goes +x-y, 2 goes -x+y, 3 goes -x-y.
// Negative steps are written as dim-b so the mask wraps them.
func Step(a *Agents, src Source) {
	maskX := a.DimX - 1
	maskY := a.DimY - 1

	for i := range a.Scores {
		dir := i % DirectionMod
		bx := uint32(src.IntN(BumpRange))
		by := uint32(src.IntN(BumpRange))

		dx := bx
		if dir >= 2 {
			dx = a.DimX - bx
		}
		dy := by
		if dir%2 == 1 {
			dy = a.DimY - by
		}

		a.Positions[2*i] = (a.Positions[2*i] + dx) & maskX
		a.Positions[2*i+1] = (a.Positions[2*i+1] + dy) & maskY
	}
}
