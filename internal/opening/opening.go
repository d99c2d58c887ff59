// Package opening matches a played move sequence against a small book of
// named openings. The book is a passive collaborator: it is handed the game's
// move list and answers with a name, never the other way around.
package opening

// Entry names one opening line. Moves are in algebraic notation, from the
// first white move onward.
type Entry struct {
	ECO   string   `json:"eco"`
	Name  string   `json:"name"`
	Moves []string `json:"moves,omitempty"`
}

type Book struct {
	entries []Entry
}

// NewBook returns a book with the built-in table.
func NewBook() *Book {
	return &Book{entries: defaultEntries}
}

// NewBookWithEntries builds a book from a caller-supplied table.
func NewBookWithEntries(entries []Entry) *Book {
	return &Book{entries: entries}
}

// Lookup returns the deepest entry whose line is a prefix of the played
// moves, or nil when no entry matches.
func (b *Book) Lookup(moves []string) *Entry {
	var best *Entry
	for i := range b.entries {
		entry := &b.entries[i]
		if len(entry.Moves) > len(moves) {
			continue
		}
		if best != nil && len(entry.Moves) <= len(best.Moves) {
			continue
		}
		matched := true
		for j, san := range entry.Moves {
			if moves[j] != san {
				matched = false
				break
			}
		}
		if matched {
			best = entry
		}
	}
	if best == nil {
		return nil
	}
	match := *best
	return &match
}

var defaultEntries = []Entry{
	{ECO: "A04", Name: "Réti Opening", Moves: []string{"Nf3"}},
	{ECO: "A10", Name: "English Opening", Moves: []string{"c4"}},
	{ECO: "B00", Name: "King's Pawn Opening", Moves: []string{"e4"}},
	{ECO: "B10", Name: "Caro-Kann Defense", Moves: []string{"e4", "c6"}},
	{ECO: "B20", Name: "Sicilian Defense", Moves: []string{"e4", "c5"}},
	{ECO: "C00", Name: "French Defense", Moves: []string{"e4", "e6"}},
	{ECO: "C20", Name: "King's Pawn Game", Moves: []string{"e4", "e5"}},
	{ECO: "C40", Name: "King's Knight Opening", Moves: []string{"e4", "e5", "Nf3"}},
	{ECO: "C44", Name: "King's Pawn Game", Moves: []string{"e4", "e5", "Nf3", "Nc6"}},
	{ECO: "C50", Name: "Italian Game", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4"}},
	{ECO: "C60", Name: "Ruy Lopez", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
	{ECO: "D00", Name: "Queen's Pawn Game", Moves: []string{"d4", "d5"}},
	{ECO: "D06", Name: "Queen's Gambit", Moves: []string{"d4", "d5", "c4"}},
	{ECO: "D30", Name: "Queen's Gambit Declined", Moves: []string{"d4", "d5", "c4", "e6"}},
	{ECO: "E60", Name: "King's Indian Defense", Moves: []string{"d4", "Nf6", "c4", "g6"}},
}
