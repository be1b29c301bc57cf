package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_CreatedDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"datetime with micros", "2026-08-29 09:15:30.123456", time.Date(2026, 8, 29, 9, 15, 30, 123456000, time.UTC)},
		{"plain datetime", "2026-08-29 09:15:30", time.Date(2026, 8, 29, 9, 15, 30, 0, time.UTC)},
		{"rfc3339", "2026-08-29T09:15:30Z", time.Date(2026, 8, 29, 9, 15, 30, 0, time.UTC)},
		{"date only", "2026-08-29", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := Order{CreatedAt: tc.raw}
			got, ok := o.CreatedDate()
			require.True(t, ok)
			assert.True(t, tc.want.Equal(got))
		})
	}

	t.Run("unparseable", func(t *testing.T) {
		o := Order{CreatedAt: "last tuesday"}
		_, ok := o.CreatedDate()
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		o := Order{}
		_, ok := o.CreatedDate()
		assert.False(t, ok)
	})
}
