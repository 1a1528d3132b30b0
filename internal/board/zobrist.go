package board

// Zobrist keys for position fingerprinting. The fingerprint folds in piece
// placement, side to move, castling rights, and the en passant file, so
// legally distinguishable positions never share a hash by construction.
var (
	zobristPiece      [2][6][64]uint64
	zobristCastling   [16]uint64
	zobristEnPassant  [8]uint64
	zobristSideToMove uint64
)

// xorshift64* with a fixed seed keeps the keys reproducible across runs.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := &prng{state: 0x9E3779B97F4A7C15}
	for c := 0; c < 2; c++ {
		for k := 0; k < 6; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rng.next()
			}
		}
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	zobristSideToMove = rng.next()
}

func colorIndex(c Color) int {
	if c == Black {
		return 1
	}
	return 0
}

func kindIndex(k PieceType) int {
	switch k {
	case Pawn:
		return 0
	case Knight:
		return 1
	case Bishop:
		return 2
	case Rook:
		return 3
	case Queen:
		return 4
	case King:
		return 5
	}
	return 0
}

func (cr CastlingRights) index() int {
	idx := 0
	if cr.White.Kingside {
		idx |= 1
	}
	if cr.White.Queenside {
		idx |= 2
	}
	if cr.Black.Kingside {
		idx |= 4
	}
	if cr.Black.Queenside {
		idx |= 8
	}
	return idx
}

// Hash fingerprints the position for the given side to move.
func (p *Position) Hash(sideToMove Color) uint64 {
	var h uint64
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.Grid[row][col]
			if piece != nil {
				h ^= zobristPiece[colorIndex(piece.Color)][kindIndex(piece.Type)][row*8+col]
			}
		}
	}
	h ^= zobristCastling[p.Rights.index()]
	if p.EnPassantTarget != nil {
		h ^= zobristEnPassant[p.EnPassantTarget.Col]
	}
	if sideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
