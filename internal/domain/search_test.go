package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "citta", Normalize("  Città "))
	assert.Equal(t, "perche cosi", Normalize("Perché Così"))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatchesQuery(t *testing.T) {
	doc := "Raccolta Fondi Città di Bari"

	tests := []struct {
		query string
		want  bool
	}{
		{"citta bari", true},
		{"CITTÀ", true},
		{"fondi raccolta", true},
		{"milano", false},
		{"bari milano", false},
		{"", true},
		{"   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesQuery(doc, tt.query))
		})
	}
}

func TestSearchDocument(t *testing.T) {
	doc := SearchDocument("Pulizia Parco", "", "  Lecce ", "giardinaggio", "Verde Città")

	assert.Equal(t, "pulizia parco lecce giardinaggio verde citta", doc)
}
