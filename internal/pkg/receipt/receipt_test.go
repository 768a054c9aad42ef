package receipt

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Data {
	return Data{
		DonationID:      42,
		OrderID:         "don-abc",
		DonorName:       "Zoé Martin",
		DonorEmail:      "zoe@example.org",
		Amount:          decimal.RequireFromString("1234.5"),
		CampaignTitle:   "Winter coats",
		AssociationName: "Solidarité",
		Message:         "Keep going",
		Date:            time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNumberAndFilename(t *testing.T) {
	assert.Equal(t, "000042", sample().Number())
	assert.Equal(t, "donation_42.pdf", Filename(42))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestGenerator_Generate(t *testing.T) {
	g, err := NewGenerator(t.TempDir())
	require.NoError(t, err)

	name, err := g.Generate(sample())
	require.NoError(t, err)
	assert.Equal(t, "donation_42.pdf", name)

	info, err := os.Stat(g.Path(name))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
