package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatRowsUsaLayoutDelBackend(t *testing.T) {
	layout := [][]int{
		{1, 3, 6, 9, 12, 15},
		{2, 4, 7, 10, 13, 16},
		{5, 8, 11, 14, 18},
		{17, 19},
		{20},
	}
	assert.Equal(t, layout, SeatRows(20, layout))
}

func TestSeatRowsDerivaFilasSinLayout(t *testing.T) {
	rows := SeatRows(10, nil)
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10}}, rows)
}

func TestSeatRowsIgnoraLayoutIncompleto(t *testing.T) {
	// hint covers only part of the capacity, so it cannot be trusted
	rows := SeatRows(8, [][]int{{1, 2, 3}})
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}}, rows)
}

func TestSeatRowsIgnoraLayoutFueraDeRango(t *testing.T) {
	rows := SeatRows(4, [][]int{{1, 2}, {3, 7}})
	assert.Equal(t, [][]int{{1, 2, 3, 4}}, rows)
}

func TestSeatRowsCapacidadCero(t *testing.T) {
	assert.Empty(t, SeatRows(0, nil))
}
