package view

// ColumnWidth returns the width of each of n bordered columns that fit in
// width cells, never less than minW.
func ColumnWidth(width, n, minW int) int {
	if n <= 0 {
		return minW
	}
	w := (width - (n + 1)) / n
	if w < minW {
		return minW
	}
	return w
}
