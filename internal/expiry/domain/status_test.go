package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "empty date is not applicable", date: "", want: StatusNA},
		{name: "yesterday is expired", date: "2026-03-09", want: StatusExpired},
		{name: "today is still valid", date: "2026-03-10", want: StatusValid},
		{name: "tomorrow is valid", date: "2026-03-11", want: StatusValid},
		{name: "far past is expired", date: "2020-01-01", want: StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StatusFor(tt.date, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusForRejectsMalformedDate(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := StatusFor("10/03/2026", today)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = StatusFor("soon", today)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
