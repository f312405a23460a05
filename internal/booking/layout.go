package booking

// SeatRows returns the rows used to draw the seat grid. The backend's
// layout hint wins when it covers exactly the advertised capacity;
// otherwise rows of four are derived from the capacity, so the grid never
// depends on a hardcoded vehicle geometry.
func SeatRows(capacidad int, layout [][]int) [][]int {
	if layoutCubre(capacidad, layout) {
		return layout
	}

	const porFila = 4
	rows := make([][]int, 0, (capacidad+porFila-1)/porFila)
	for start := 1; start <= capacidad; start += porFila {
		end := start + porFila
		if end > capacidad+1 {
			end = capacidad + 1
		}
		row := make([]int, 0, porFila)
		for n := start; n < end; n++ {
			row = append(row, n)
		}
		rows = append(rows, row)
	}
	return rows
}

func layoutCubre(capacidad int, layout [][]int) bool {
	if len(layout) == 0 || capacidad <= 0 {
		return false
	}
	seen := make(map[int]bool, capacidad)
	for _, row := range layout {
		for _, n := range row {
			if n < 1 || n > capacidad || seen[n] {
				return false
			}
			seen[n] = true
		}
	}
	return len(seen) == capacidad
}
