package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSeat(t *testing.T) {
	tests := []struct {
		name      string
		seat      int
		row       int
		wantField string
	}{
		{name: "first seat first row", seat: 1, row: 1},
		{name: "last seat last row", seat: 10, row: 5},
		{name: "seat zero", seat: 0, row: 1, wantField: "seat"},
		{name: "seat above bound", seat: 11, row: 1, wantField: "seat"},
		{name: "row zero", seat: 1, row: 0, wantField: "row"},
		{name: "row above bound", seat: 1, row: 6, wantField: "row"},
		{name: "negative seat", seat: -3, row: 2, wantField: "seat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeat(tt.seat, 10, tt.row, 5)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var seatErr *SeatError
			assert.True(t, errors.As(err, &seatErr))
			assert.Equal(t, tt.wantField, seatErr.Field)
		})
	}
}

func TestValidateSeat_seatCheckedBeforeRow(t *testing.T) {
	// Both dimensions out of bounds: the seat failure is reported.
	err := ValidateSeat(99, 10, 99, 5)

	var seatErr *SeatError
	assert.True(t, errors.As(err, &seatErr))
	assert.Equal(t, "seat", seatErr.Field)
}

func TestSeatError_message(t *testing.T) {
	err := &SeatError{Field: "seat", Value: 7, Max: 6}
	assert.Equal(t, "seat must be in range [1, 6], not 7", err.Error())
}

func TestAirplaneCapacity(t *testing.T) {
	a := Airplane{Rows: 5, SeatsInRow: 10}
	assert.Equal(t, 50, a.Capacity())
}
