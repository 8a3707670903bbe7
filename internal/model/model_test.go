package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2026-08-31", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), true},
		{"2026-08-31T14:30", time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC), true},
		{"2026-08-31T14:30:15", time.Date(2026, 8, 31, 14, 30, 15, 0, time.UTC), true},
		{"2026-08-31T14:30:15Z", time.Date(2026, 8, 31, 14, 30, 15, 0, time.UTC), true},
		{"  2026-08-31  ", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"31/08/2026", time.Time{}, false},
		{"someday", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "input %q: got %v", tt.in, got)
		}
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)
	night := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	next := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, next))
}

func TestHeadCount(t *testing.T) {
	assert.Equal(t, 1, Animal{}.HeadCount())
	assert.Equal(t, 1, Animal{Count: 1}.HeadCount())
	assert.Equal(t, 25, Animal{Count: 25}.HeadCount())
}

func TestFindAnimal(t *testing.T) {
	animals := []Animal{{ID: "a1", Name: "Bessie"}, {ID: "a2", Name: "Daisy"}}

	got, ok := FindAnimal(animals, "a2")
	require.True(t, ok)
	assert.Equal(t, "Daisy", got.Name)

	_, ok = FindAnimal(animals, "gone")
	assert.False(t, ok)
	_, ok = FindAnimal(animals, "")
	assert.False(t, ok)
	_, ok = FindAnimal(nil, "a1")
	assert.False(t, ok)
}

func TestAnimalsInCategory(t *testing.T) {
	animals := []Animal{
		{ID: "a1", Category: "Cattle"},
		{ID: "a2", Category: "cattle "},
		{ID: "a3", Category: "Poultry"},
	}

	got := AnimalsInCategory(animals, " CATTLE")
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a2", got[1].ID)

	assert.Empty(t, AnimalsInCategory(animals, "Goats"))
}
