package connectfour

// windowSize is the length of a winning line.
const windowSize = 4

// window holds the last windowSize cells seen along a ray. Slots not yet
// reached are Empty.
type window struct {
	slots [windowSize]Cell
	next  int
}

func (that *window) push(cell Cell) {
	that.slots[that.next] = cell
	that.next = (that.next + 1) % windowSize
}

// qualifies reports whether the window holds at least n of own and none of
// the opponent's pieces.
func (that *window) qualifies(n int, own, opponent Cell) bool {
	count := 0
	for _, cell := range that.slots {
		switch cell {
		case opponent:
			return false
		case own:
			count++
		}
	}
	return count >= n
}

// CountLinesOfLength counts the windows of four consecutive cells, over every
// row, column and diagonal, that contain at least n of player's pieces and
// none of the opponent's. Windows near the start of a ray are padded with
// Empty, and the main falling diagonal is scanned twice, so the result is a
// heuristic score rather than a count of distinct lines.
func (that *Board) CountLinesOfLength(n int, player Player) int {
	own, opponent := player.Cell(), Opposite(player).Cell()
	last := that.size - 1
	lines := 0

	for i := 0; i < that.size; i++ {
		lines += that.scanRay(i, 0, 0, 1, n, own, opponent) // vertical
		lines += that.scanRay(0, i, 1, 0, n, own, opponent) // horizontal
		lines += that.scanRay(0, i, 1, 1, n, own, opponent)
		lines += that.scanRay(last, i, -1, 1, n, own, opponent)

		if i != 0 {
			lines += that.scanRay(i, 0, 1, 1, n, own, opponent)
			lines += that.scanRay(i, 0, -1, 1, n, own, opponent)
		}
	}

	return lines
}

// scanRay walks from (column, row) by (dc, dr) until it leaves the board.
func (that *Board) scanRay(column, row, dc, dr, n int, own, opponent Cell) int {
	var slide window
	lines := 0

	for that.inside(column, row) {
		slide.push(that.cells[that.index(column, row)])
		if slide.qualifies(n, own, opponent) {
			lines++
		}

		column += dc
		row += dr
	}

	return lines
}
