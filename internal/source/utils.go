package source

import (
	"path/filepath"
	"slices"
	"unicode/utf16"
	"unicode/utf8"
)

// normalizeCRLF replaces every \r\n with \n and leaves lone \r untouched.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line and a 1-based UTF-16 column.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	if int(off) > len(content) {
		off = uint32(len(content))
	}

	// largest i with lineIdx[i] < off: the newline that ends the previous line
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	var lineStart uint32
	if hi >= 0 {
		lineStart = lineIdx[hi] + 1
	}

	col := uint32(1)
	for p := lineStart; p < off; {
		r, size := utf8.DecodeRune(content[p:off])
		if n := utf16.RuneLen(r); n > 0 {
			col += uint32(n)
		} else {
			col++
		}
		p += uint32(size)
	}
	return LineCol{Line: uint32(hi + 2), Col: col}
}

func normalizePath(p string) string {
	if p == "" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
