package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmferrors "pmfkit/internal/errors"
)

func TestGuessTotalVariable(t *testing.T) {
	tests := []struct {
		name        string
		species     []string
		want        string
		wantGuessed bool
		wantErr     bool
	}{
		{
			name:    "canonical alias",
			species: []string{"OC", "EC", "PM10"},
			want:    "PM10",
		},
		{
			name:    "first alias wins over later ones",
			species: []string{"PMrecons", "PM2.5", "OC"},
			want:    "PM2.5",
		},
		{
			name:        "fallback to PM substring",
			species:     []string{"PMxyz", "OC"},
			want:        "PMxyz",
			wantGuessed: true,
			wantErr:     true,
		},
		{
			name:    "no candidate at all",
			species: []string{"OC", "EC"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, guessed, err := GuessTotalVariable(tt.species)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, pmferrors.KindAmbiguousMetadata, pmferrors.KindOf(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.wantGuessed, guessed)
		})
	}
}

func TestGuessTotalVariableDeterministic(t *testing.T) {
	species := []string{"PM10", "PM2.5", "OC"}
	first, _, err := GuessTotalVariable(species)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		name, _, err := GuessTotalVariable(species)
		require.NoError(t, err)
		assert.Equal(t, first, name)
	}
}
