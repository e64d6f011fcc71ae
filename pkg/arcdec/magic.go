package arcdec

import (
	"bytes"
	"strings"
)

// signature は特定オフセットのマジックナンバーと拡張子の対応です。
type signature struct {
	offset int
	magic  []byte
	ext    string
}

// 先に長いマジックを並べ、最初に一致したものを採用します。
var signatureTable = []signature{
	{0, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
	{0, []byte{0xFF, 0xD8, 0xFF}, "jpg"},
	{0, []byte("GIF8"), "gif"},
	{0, []byte("OggS"), "ogg"},
	{8, []byte("WAVE"), "wav"},
	{0, []byte("BM"), "bmp"},
	{0, []byte("MZ"), "exe"},
	{0, []byte{0x50, 0x4B, 0x03, 0x04}, "zip"},
	{0, []byte{0x00, 0x00, 0x01, 0x00}, "ico"},
	{0, []byte{0x00, 0x00, 0x02, 0x00}, "cur"},
}

// GuessExtension は内容のマジックナンバーから拡張子を推測して Name に
// 付け足します。既に同じ拡張子で終わっている場合や、どのマジックにも
// 一致しない場合は名前を変えません。
func (f *File) GuessExtension() {
	for _, s := range signatureTable {
		if len(f.Data) < s.offset+len(s.magic) {
			continue
		}
		if !bytes.Equal(f.Data[s.offset:s.offset+len(s.magic)], s.magic) {
			continue
		}
		suffix := "." + s.ext
		if !strings.HasSuffix(f.Name, suffix) {
			f.Name += suffix
		}
		return
	}
}
