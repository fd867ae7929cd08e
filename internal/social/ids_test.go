package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/legion-shores/internal/errx"
)

func TestEncodeDecode(t *testing.T) {
	cases := []struct {
		n     int
		width int
		code  string
	}{
		{0, 2, "00"},
		{1, 3, "001"},
		{63, 2, "0!"},
		{64, 2, "10"},
		{128, 2, "20"},
		{4095, 2, "!!"},
		{262143, 3, "!!!"},
	}
	for _, tc := range cases {
		code, err := Encode(tc.n, tc.width)
		require.NoError(t, err)
		assert.Equal(t, tc.code, code)
		n, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, tc.n, n)
	}
	assert.Equal(t, "20", WildsID.Code())
}

func TestEncodeRejectsOverflow(t *testing.T) {
	_, err := Encode(4096, 2)
	require.ErrorIs(t, err, errx.ErrStructural)
	_, err = Encode(-1, 3)
	require.ErrorIs(t, err, errx.ErrStructural)
	_, err = Encode(1, 0)
	require.ErrorIs(t, err, errx.ErrConfiguration)
}

func TestDecodeRejectsBadSymbols(t *testing.T) {
	_, err := Decode("a-b")
	require.ErrorIs(t, err, errx.ErrStructural)
	_, err = Decode("")
	require.ErrorIs(t, err, errx.ErrStructural)
}

func TestCodeOutOfRangeNeverAliases(t *testing.T) {
	assert.Equal(t, "!!", MaxEthnicID.Code())
	over := MaxEthnicID + 1
	assert.Equal(t, "#4096", over.Code())
	assert.NotEqual(t, EthnicID(0).Code(), over.Code())
	_, err := Decode(over.Code())
	require.ErrorIs(t, err, errx.ErrStructural)
	assert.Equal(t, "#262144", (MaxRegionID + 1).Code())
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "1:20", Ref{Kind: KindEthnic, ID: uint32(WildsID)}.String())
	assert.Equal(t, "3:00a", Ref{Kind: KindRegion, ID: 10}.String())
}
