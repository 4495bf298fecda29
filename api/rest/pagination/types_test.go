package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          Params
	}{
		{"zero limit gets default", 0, 0, Params{Limit: DefaultLimit, Offset: 0}},
		{"negative limit gets default", -5, 10, Params{Limit: DefaultLimit, Offset: 10}},
		{"oversized limit is capped", 9999, 0, Params{Limit: MaxLimit, Offset: 0}},
		{"negative offset resets", 30, -1, Params{Limit: 30, Offset: 0}},
		{"in-range values pass through", 50, 200, Params{Limit: 50, Offset: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.limit, tt.offset))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Limit: 20, Offset: 0}, 45)
	assert.True(t, meta.HasMore)
	assert.Equal(t, 45, meta.Total)

	meta = NewMeta(Params{Limit: 20, Offset: 40}, 45)
	assert.False(t, meta.HasMore, "last partial page has no more rows")
}
