package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/obi"
)

func TestDecodeInput(t *testing.T) {
	data := []byte{
		0, 0, 0, 2,
		0, 0, 0, 4, 'W', 'B', 'T', 'C',
		0, 0, 0, 2, 'V', 'C',
		3,
	}

	input, err := DecodeInput(data)
	require.NoError(t, err)
	assert.Equal(t, Input{Symbols: []string{"WBTC", "VC"}, MinimumSourceCount: 3}, input)

	encoded, err := EncodeInput(input)
	require.NoError(t, err)
	assert.Equal(t, data, encoded)
}

func TestDecodeInput_Malformed(t *testing.T) {
	_, err := DecodeInput([]byte{0, 0, 0, 1, 0, 0, 0, 9, 'X'})
	assert.ErrorIs(t, err, obi.ErrUnexpectedEOF)

	_, err = DecodeInput([]byte{0, 0, 0, 0, 1, 2})
	assert.ErrorIs(t, err, obi.ErrTrailingBytes)
}

func TestEncodeOutput(t *testing.T) {
	out := Output{Responses: []Response{
		NewResponse("VC", aggregator.Success, 1250000000),
		NewResponse("X", aggregator.Unknown, 0),
	}}

	data, err := EncodeOutput(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 2,
		0, 0, 0, 2, 'V', 'C', 0, 0, 0, 0, 0, 0x4a, 0x81, 0x7c, 0x80,
		0, 0, 0, 1, 'X', 127, 0, 0, 0, 0, 0, 0, 0, 0,
	}, data)

	decoded, err := DecodeOutput(data)
	require.NoError(t, err)
	assert.Equal(t, out, decoded)
}
