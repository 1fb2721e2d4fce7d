package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate_DaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{name: "first half of 2023", from: "2023-01-01", to: "2023-07-01", want: 181},
		{name: "same day", from: "2023-07-01", to: "2023-07-01", want: 0},
		{name: "backwards", from: "2023-03-01", to: "2023-01-01", want: -59},
		{name: "leap day", from: "2024-02-28", to: "2024-03-01", want: 2},
		{name: "beyond duration range", from: "1700-01-01", to: "2023-01-01", want: 117973},
		{name: "beyond duration range backwards", from: "2023-01-01", to: "1700-01-01", want: -117973},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParseDate(tt.from).DaysUntil(MustParseDate(tt.to)))
		})
	}
}
