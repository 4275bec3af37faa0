package chess

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/movetx/internal/errors"
)

// Team names used by ParseLayout.
const (
	WhiteTeam = "white"
	BlackTeam = "black"
)

// StandardLayout is the standard starting position.
const StandardLayout = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ParseLayout builds a board from a FEN-style piece placement string.
// Ranks are listed from the highest to rank 1 and separated by '/'; digits
// count empty squares; uppercase letters are White and lowercase Black.
// Every rank must describe the same number of files.
//
// Pieces are named "<team>-<kind>-<square>", for example "white-pawn-d2".
func ParseLayout(placement string) (*Board, error) {
	placement = strings.TrimSpace(placement)
	if placement == "" {
		return nil, fmt.Errorf("empty layout: %w", errors.ErrInvalidLayout)
	}
	if fields := strings.Fields(placement); len(fields) > 1 {
		placement = fields[0]
	}

	rows := strings.Split(placement, "/")
	files := -1
	for i, row := range rows {
		width, err := rowWidth(row)
		if err != nil {
			return nil, err
		}
		if files >= 0 && width != files {
			return nil, fmt.Errorf("rank %d has %d files, want %d: %w",
				len(rows)-i, width, files, errors.ErrInvalidLayout)
		}
		files = width
	}
	if files < 1 {
		return nil, fmt.Errorf("layout has no files: %w", errors.ErrInvalidLayout)
	}

	board := NewBoard(len(rows), files)
	white := NewTeam(WhiteTeam, White)
	black := NewTeam(BlackTeam, Black)
	board.AddTeam(white)
	board.AddTeam(black)

	for i, row := range rows {
		rank := len(rows) - i
		file := 1
		for _, c := range row {
			if unicode.IsDigit(c) {
				file += int(c - '0')
				continue
			}
			kind := runeKind(c)
			team := white
			if unicode.IsLower(c) {
				team = black
			}
			coord := Coordinate{Rank: rank, File: file}
			p := NewPiece(pieceID(team, kind, coord), pieceName(team, kind), kind, team)
			if err := board.Place(p, coord); err != nil {
				return nil, err
			}
			file++
		}
	}
	return board, nil
}

// rowWidth returns the number of files a placement row describes.
func rowWidth(row string) (int, error) {
	width := 0
	for _, c := range row {
		switch {
		case c >= '1' && c <= '9':
			width += int(c - '0')
		case runeKind(c) != NoKind:
			width++
		default:
			return 0, fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidLayout)
		}
	}
	return width, nil
}

// runeKind maps a placement character to its kind. Only ASCII letters
// name pieces.
func runeKind(c rune) Kind {
	if c > unicode.MaxASCII {
		return NoKind
	}
	return KindFromLetter(byte(c))
}

func pieceID(team *Team, kind Kind, c Coordinate) string {
	return fmt.Sprintf("%s-%s-%s", team.Name, strings.ToLower(kind.String()), c)
}

func pieceName(team *Team, kind Kind) string {
	return fmt.Sprintf("%s %s", team.Colour, kind)
}

// FormatLayout renders the occupied squares of b as a placement string that
// ParseLayout accepts. Pieces of a White team are uppercase.
func FormatLayout(b *Board) string {
	var sb strings.Builder
	for rank := b.Ranks(); rank >= 1; rank-- {
		empty := 0
		flush := func() {
			for empty > 0 {
				n := empty
				if n > 9 {
					n = 9
				}
				sb.WriteByte(byte('0' + n))
				empty -= n
			}
		}
		for file := 1; file <= b.Files(); file++ {
			sq, _ := b.SquareAt(At(rank, file))
			p := sq.Occupant()
			if p == nil {
				empty++
				continue
			}
			flush()
			letter := p.Kind.Letter()
			if p.Team == nil || p.Team.Colour != White {
				letter = byte(unicode.ToLower(rune(letter)))
			}
			sb.WriteByte(letter)
		}
		flush()
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
