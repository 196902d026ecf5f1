package pmf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceCategory(t *testing.T) {
	tests := []struct {
		factor string
		want   string
	}{
		{"Vehicular", "Traffic"},
		{"Road trafic", "Road traffic"},
		{"Bio. burning", "Biomass_burning"},
		{"Sulphate-rich", "Sulfate_rich"},
		{"Aged sea salt", "Aged_salt"},
		{"Sels de mer", "Salt"},
		{"Something local", "Something local"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SourceCategory(tt.factor), "factor %q", tt.factor)
	}
}

func TestSourceColor(t *testing.T) {
	assert.Equal(t, "#000000", SourceColor("Road traffic"))
	assert.Equal(t, "#92d050", SourceColor("Biomass_burning"))
	// Unknown sources fall back to gray rather than failing.
	assert.Equal(t, "#666666", SourceColor("Mystery source"))

	palette := SourceColors()
	assert.Equal(t, SourceColor("Dust"), palette["Dust"])
	// The copy is detached from the package map.
	palette["Dust"] = "#123456"
	assert.Equal(t, "#dac6a2", SourceColor("Dust"))
}
