package board

import "testing"

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name   string
		extras []struct {
			kind  PieceType
			color Color
			sq    Square
		}
		want bool
	}{
		{name: "bare kings", want: true},
		{
			name: "king and bishop vs king",
			extras: []struct {
				kind  PieceType
				color Color
				sq    Square
			}{{Bishop, White, Square{Row: 4, Col: 4}}},
			want: true,
		},
		{
			name: "king and knight vs king",
			extras: []struct {
				kind  PieceType
				color Color
				sq    Square
			}{{Knight, Black, Square{Row: 4, Col: 4}}},
			want: true,
		},
		{
			name: "bishops on same colored squares",
			extras: []struct {
				kind  PieceType
				color Color
				sq    Square
			}{
				{Bishop, White, Square{Row: 7, Col: 2}},
				{Bishop, Black, Square{Row: 0, Col: 5}},
			},
			want: true,
		},
		{
			name: "bishops on opposite colored squares",
			extras: []struct {
				kind  PieceType
				color Color
				sq    Square
			}{
				{Bishop, White, Square{Row: 7, Col: 2}},
				{Bishop, Black, Square{Row: 0, Col: 2}},
			},
			want: false,
		},
		{
			name: "king and rook vs king",
			extras: []struct {
				kind  PieceType
				color Color
				sq    Square
			}{{Rook, White, Square{Row: 4, Col: 4}}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := NewEmptyPosition()
			pos.PlacePiece(King, White, Square{Row: 7, Col: 4})
			pos.PlacePiece(King, Black, Square{Row: 0, Col: 4})
			for _, e := range tt.extras {
				pos.PlacePiece(e.kind, e.color, e.sq)
			}
			if got := pos.IsDrawByInsufficientMaterial(); got != tt.want {
				t.Fatalf("IsDrawByInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiftyMoveRule(t *testing.T) {
	pos := NewPosition()
	pos.HalfmoveClock = 99
	if pos.IsDrawByFiftyMoveRule() {
		t.Fatal("99 half-moves should not trigger the fifty-move rule")
	}
	pos.HalfmoveClock = 100
	if !pos.IsDrawByFiftyMoveRule() {
		t.Fatal("100 half-moves should trigger the fifty-move rule")
	}
}

func TestRepetitionHeuristic(t *testing.T) {
	pos := NewPosition()

	shuffle := []struct{ from, to Square }{
		{Square{7, 6}, Square{5, 5}}, // Nf3
		{Square{0, 6}, Square{2, 5}}, // Nf6
		{Square{5, 5}, Square{7, 6}}, // Ng1
		{Square{2, 5}, Square{0, 6}}, // Ng8
	}

	for i := 0; i < 2; i++ {
		for _, s := range shuffle {
			if pos.IsDrawByRepetitionHeuristic() {
				t.Fatalf("repetition flagged early after %d moves", len(pos.History))
			}
			if !pos.ApplyMove(s.from, s.to) {
				t.Fatalf("shuffle move %v -> %v failed", s.from, s.to)
			}
		}
	}

	if !pos.IsDrawByRepetitionHeuristic() {
		t.Fatal("expected repetition heuristic after a mirrored 8-move shuffle")
	}
}
