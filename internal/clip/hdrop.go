package clip

import (
	"encoding/binary"
	"unicode/utf16"
)

// dropFilesHeaderSize is sizeof(DROPFILES): pFiles DWORD, pt POINT (two
// LONGs), fNC BOOL, fWide BOOL.
const dropFilesHeaderSize = 20

// encodeDropFiles builds a CF_HDROP payload: a DROPFILES header whose pFiles
// points just past itself with fWide set, followed by each path as a
// NUL-terminated UTF-16LE string and one extra NUL closing the list.
func encodeDropFiles(paths []string) []byte {
	size := dropFilesHeaderSize + 2
	units := make([][]uint16, len(paths))
	for i, p := range paths {
		units[i] = utf16.Encode([]rune(p))
		size += (len(units[i]) + 1) * 2
	}

	buf := make([]byte, size)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], dropFilesHeaderSize) // pFiles
	// pt.x, pt.y and fNC stay zero.
	le.PutUint32(buf[16:], 1) // fWide

	off := dropFilesHeaderSize
	for _, u := range units {
		for _, c := range u {
			le.PutUint16(buf[off:], c)
			off += 2
		}
		off += 2 // string NUL
	}
	// The final NUL is already zero.
	return buf
}

// decodeUTF16Z decodes little-endian UTF-16 from b up to the first NUL unit or
// the end of b, whichever comes first. A trailing odd byte is ignored.
func decodeUTF16Z(b []byte) string {
	n := len(b) / 2
	units := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		c := binary.LittleEndian.Uint16(b[2*i:])
		if c == 0 {
			break
		}
		units = append(units, c)
	}
	return string(utf16.Decode(units))
}
