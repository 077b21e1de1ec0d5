package engine

// ScoreState tracks score, combo and turn bookkeeping for a session.
type ScoreState struct {
	Score         int
	Combo         int // Always >= 1
	HighScore     int
	LastClearTurn int // Turn of the most recent clear, -1 before the first
	Turn          int // Successful placements so far
}

func newScoreState(highScore int) ScoreState {
	return ScoreState{
		Combo:         1,
		HighScore:     highScore,
		LastClearTurn: -1,
	}
}

// LineClear describes the rows and columns removed after a placement.
type LineClear struct {
	Rows    []int
	Columns []int
	Blocks  []Block // Each cleared cell once, rows first
}

// Lines returns the number of cleared rows plus columns.
func (lc LineClear) Lines() int {
	return len(lc.Rows) + len(lc.Columns)
}

// TurnScore is the breakdown of points earned by one placement.
type TurnScore struct {
	Placement int // Block count, never multiplied
	Lines     int // Line points after the combo multiplier
	Combo     int // Multiplier in effect this turn
	GridClear int // Flat bonus for emptying the board
}

// Total returns all points earned this turn.
func (t TurnScore) Total() int {
	return t.Placement + t.Lines + t.GridClear
}

// DetectFullLines returns the indices of every full row and column.
func DetectFullLines(g *Grid) (rows, cols []int) {
	for y := range GridSize {
		if g.IsRowFull(y) {
			rows = append(rows, y)
		}
	}
	for x := range GridSize {
		if g.IsColumnFull(x) {
			cols = append(cols, x)
		}
	}
	return rows, cols
}

// ClearFullLines detects all full lines first and then clears them, so a row
// and a column completed by the same placement are both removed.
func ClearFullLines(g *Grid) LineClear {
	rows, cols := DetectFullLines(g)
	lc := LineClear{Rows: rows, Columns: cols}
	for _, y := range rows {
		lc.Blocks = append(lc.Blocks, g.ClearRow(y)...)
	}
	for _, x := range cols {
		// A full board loses every column to the row clears.
		if g.columnEmpty(x) {
			continue
		}
		lc.Blocks = append(lc.Blocks, g.ClearColumn(x)...)
	}
	return lc
}

// resolveTurn runs the line-clear and scoring pass for the placement made on
// s.Turn. blockCount is the number of cells the placed shape covered.
func resolveTurn(s *ScoreState, g *Grid, rules Rules, blockCount int) (TurnScore, LineClear) {
	// Combo moves before this turn's lines are known: it only survives if the
	// previous turn cleared something.
	if rules.ComboScoring && s.LastClearTurn == s.Turn-1 {
		s.Combo++
	} else {
		s.Combo = 1
	}

	ts := TurnScore{Combo: s.Combo}

	// Placement points are never multiplied by the combo, only line points are.
	ts.Placement = blockCount
	s.Score += ts.Placement

	lc := ClearFullLines(g)
	if lines := lc.Lines() * rules.PointsPerLine * s.Combo; lines > 0 {
		ts.Lines = lines
		s.Score += lines
	}
	if lc.Lines() > 0 {
		s.LastClearTurn = s.Turn
		if g.IsEmpty() {
			ts.GridClear = rules.GridClearBonus
			s.Score += ts.GridClear
		}
	}

	return ts, lc
}
