package tictactoe

type Outcome int

const (
	NonTerminal Outcome = iota
	Win
	Draw
)

func (that Outcome) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "non-terminal"
	}
}

type Direction string

const (
	Horizontal Direction = "H"
	Vertical   Direction = "V"
	Diagonal   Direction = "D"
)

// Line - a winning triple; Index is 1-based within its direction.
type Line struct {
	Direction Direction
	Index     int
	Cells     [3]int
}

// Lines - every winning triple in the order Terminal checks them.
var Lines = [8]Line{
	{Direction: Horizontal, Index: 1, Cells: [3]int{0, 1, 2}},
	{Direction: Horizontal, Index: 2, Cells: [3]int{3, 4, 5}},
	{Direction: Horizontal, Index: 3, Cells: [3]int{6, 7, 8}},
	{Direction: Vertical, Index: 1, Cells: [3]int{0, 3, 6}},
	{Direction: Vertical, Index: 2, Cells: [3]int{1, 4, 7}},
	{Direction: Vertical, Index: 3, Cells: [3]int{2, 5, 8}},
	{Direction: Diagonal, Index: 1, Cells: [3]int{0, 4, 8}},
	{Direction: Diagonal, Index: 2, Cells: [3]int{2, 4, 6}},
}

// Result - terminal classification of a board. Winner, Direction and Line are set only for Win.
type Result struct {
	Outcome   Outcome
	Winner    Mark
	Direction Direction
	Line      int
}

func (that Result) IsTerminal() bool {
	return that.Outcome != NonTerminal
}
