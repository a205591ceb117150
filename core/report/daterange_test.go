package report

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redland/registro/core/calendar"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{name: "valid", from: "2026-02-01", to: "2026-02-28"},
		{name: "single day", from: "2026-02-23", to: "2026-02-23"},
		{name: "timestamps", from: "2026-02-23T00:30:00-03:00", to: "2026-02-23T23:59:00Z"},
		{name: "missing from", from: "", to: "2026-02-23", wantErr: msgMissingRange},
		{name: "missing to", from: "2026-02-23", to: " ", wantErr: msgMissingRange},
		{name: "inverted", from: "2026-02-24", to: "2026-02-23", wantErr: msgInvertedRange},
		{name: "malformed", from: "23/02/2026", to: "2026-02-23", wantErr: `Fecha inválida: "23/02/2026"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := ParseDateRange(tc.from, tc.to)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsInvalidRange(err))
				assert.True(t, IsInvalidRange(errors.Wrap(err, "wrapped")))
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.False(t, rng.From.After(rng.To))
		})
	}
}

func TestParseDay_KeepsCivilDate(t *testing.T) {
	a, err := ParseDay("2026-02-23T00:30:00-03:00")
	require.NoError(t, err)
	b, err := ParseDay("2026-02-23")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestFilterDateRange(t *testing.T) {
	b := make(calendar.Buckets[calendar.Activity])
	for _, d := range []string{"2026-02-20", "2026-02-22", "2026-02-23", "2026-02-24", "not-a-date"} {
		b.Add(d, calendar.SectionMiddle, calendar.Activity{ID: d})
	}

	tests := []struct {
		name string
		from string
		to   string
		want []string
	}{
		{name: "single day", from: "2026-02-23", to: "2026-02-23", want: []string{"2026-02-23"}},
		{name: "inclusive bounds", from: "2026-02-22", to: "2026-02-24", want: []string{"2026-02-22", "2026-02-23", "2026-02-24"}},
		{name: "nothing inside", from: "2026-03-01", to: "2026-03-31", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := ParseDateRange(tc.from, tc.to)
			require.NoError(t, err)
			got := FilterDateRange(b, rng)
			assert.Equal(t, tc.want, got.Dates())
			for d, secs := range got {
				assert.Equal(t, b[d], secs, "bucket %s must be passed through", d)
				day, _ := ParseDay(d)
				assert.True(t, rng.Contains(day))
			}
		})
	}
}
