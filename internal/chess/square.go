package chess

import "fmt"

// Square is a board coordinate. File 0 is the a-file, rank 0 is rank 1, so
// white pawns advance toward increasing rank.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// String renders the square in algebraic form, "a1".."h8".
func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

func (s Square) fileLetter() string {
	return fmt.Sprintf("%c", 'a'+s.File)
}

func (s Square) rankDigit() string {
	return fmt.Sprintf("%d", s.Rank+1)
}

// ParseSquare converts a two-character algebraic square back to coordinates.
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, str)
	}
	sq := Square{File: int(str[0] - 'a'), Rank: int(str[1] - '1')}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, str)
	}
	return sq, nil
}

// SimpleMove is a bare origin/destination pair, the shape move generation
// works in before a move is executed and recorded.
type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}
