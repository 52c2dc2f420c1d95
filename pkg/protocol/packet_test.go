package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacket_MarshalBinary(t *testing.T) {
	tests := []struct {
		name   string
		packet Packet
		want   []byte
	}{
		{
			name:   "ping",
			packet: PingInstruction(1),
			want:   []byte{0xFF, 0xFF, 0x01, 0x02, 0x01, 0xFB},
		},
		{
			// Datasheet example: read internal temperature of ID 1.
			name:   "read",
			packet: ReadInstruction(1, 0x2B, 1),
			want:   []byte{0xFF, 0xFF, 0x01, 0x04, 0x02, 0x2B, 0x01, 0xCC},
		},
		{
			// Datasheet example: set ID of broadcast target to 1.
			name:   "write byte",
			packet: WriteInstruction(0xFE, 0x03, 0x01),
			want:   []byte{0xFF, 0xFF, 0xFE, 0x04, 0x03, 0x03, 0x01, 0xF6},
		},
		{
			name:   "write word",
			packet: WriteInstruction(1, 0x1E, 0x00, 0x02),
			want:   []byte{0xFF, 0xFF, 0x01, 0x05, 0x03, 0x1E, 0x00, 0x02, 0xD6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.packet.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPacket_TooManyParams(t *testing.T) {
	p := Packet{ID: 1, Instruction: Write, Params: make([]byte, MaxParams+1)}
	_, err := p.MarshalBinary()
	assert.ErrorIs(t, err, ErrTooManyParams)
}

func TestReadStatus(t *testing.T) {
	// Status of the temperature read above: 32 degrees, no error.
	buf := bytes.NewReader([]byte{0xFF, 0xFF, 0x01, 0x03, 0x00, 0x20, 0xDB})

	st, err := ReadStatus(buf)
	require.NoError(t, err)
	assert.Equal(t, byte(1), st.ID)
	assert.Equal(t, []byte{0x20}, st.Params)
	assert.NoError(t, st.Err())
}

func TestReadStatus_SkipsNoise(t *testing.T) {
	raw := []byte{0x00, 0x12, 0xFF, 0x07, 0xFF, 0xFF, 0xFF, 0x01, 0x02, 0x00, 0xFC}
	st, err := ReadStatus(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, byte(1), st.ID)
	assert.Empty(t, st.Params)
}

func TestReadStatus_Checksum(t *testing.T) {
	buf := bytes.NewReader([]byte{0xFF, 0xFF, 0x01, 0x03, 0x00, 0x20, 0xDC})
	_, err := ReadStatus(buf)
	assert.True(t, errors.Is(err, ErrChecksum), "err = %v", err)
}

func TestReadStatus_Truncated(t *testing.T) {
	buf := bytes.NewReader([]byte{0xFF, 0xFF, 0x01, 0x04, 0x00, 0x20})
	_, err := ReadStatus(buf)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadStatus_BadLength(t *testing.T) {
	buf := bytes.NewReader([]byte{0xFF, 0xFF, 0x01, 0x01, 0x00, 0xFD})
	_, err := ReadStatus(buf)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestStatus_DeviceError(t *testing.T) {
	st := Status{ID: 3, Error: OverheatingError | InputVoltageError}

	err := st.Err()
	require.Error(t, err)

	var devErr *DeviceError
	require.True(t, errors.As(err, &devErr))
	assert.True(t, devErr.Has(OverheatingError))
	assert.True(t, devErr.Has(InputVoltageError))
	assert.False(t, devErr.Has(OverloadError))
	assert.Equal(t, "device 3 reported error: input voltage|overheating", err.Error())
}

func TestWord(t *testing.T) {
	lo, hi := Word(0x03FF)
	assert.Equal(t, byte(0xFF), lo)
	assert.Equal(t, byte(0x03), hi)
	assert.Equal(t, 1023, MakeWord(lo, hi))
	assert.Equal(t, 65535, MakeWord(0xFF, 0xFF))
}
