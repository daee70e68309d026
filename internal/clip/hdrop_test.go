package clip

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDropFilesLayout(t *testing.T) {
	paths := []string{`C:\a.txt`, `C:\dir\b`}
	buf := encodeDropFiles(paths)

	// header + (8+1)*2 + (8+1)*2 + final NUL
	require.Len(t, buf, 20+18+18+2)

	le := binary.LittleEndian
	assert.Equal(t, uint32(20), le.Uint32(buf[0:]), "pFiles")
	assert.Equal(t, uint32(0), le.Uint32(buf[4:]), "pt.x")
	assert.Equal(t, uint32(0), le.Uint32(buf[8:]), "pt.y")
	assert.Equal(t, uint32(0), le.Uint32(buf[12:]), "fNC")
	assert.Equal(t, uint32(1), le.Uint32(buf[16:]), "fWide")

	// Walk the list the way DragQueryFileW does.
	var got []string
	off := 20
	for {
		s := decodeUTF16Z(buf[off:])
		if s == "" {
			break
		}
		got = append(got, s)
		off += (len(utf16.Encode([]rune(s))) + 1) * 2
	}
	assert.Equal(t, paths, got)
	assert.Equal(t, len(buf)-2, off)
	assert.Equal(t, []byte{0, 0}, buf[len(buf)-2:])
}

func TestEncodeDropFilesNonASCII(t *testing.T) {
	buf := encodeDropFiles([]string{`C:\日本\😀.txt`})
	assert.Equal(t, `C:\日本\😀.txt`, decodeUTF16Z(buf[20:]))
}

func TestDecodeUTF16Z(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"terminated", []byte{'h', 0, 'i', 0, 0, 0, 'x', 0}, "hi"},
		{"unterminated", []byte{'h', 0, 'i', 0}, "hi"},
		{"odd trailing byte", []byte{'h', 0, 'i'}, "h"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeUTF16Z(tt.in))
		})
	}
}
