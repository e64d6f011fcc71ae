package arcdec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// streamReader はバイト列上の位置付きカーソルです。ヘッダ解析中の
// 「位置を保存して部分木を読み、必ず元に戻す」規律のために tell/seek を
// 備えます。io.Reader を満たすので binary.Read でそのまま使えます。
type streamReader struct {
	data []byte
	pos  int64
}

func newStreamReader(data []byte) *streamReader {
	return &streamReader{data: data}
}

// Read は io.Reader の実装です。終端で io.EOF を返します。
func (s *streamReader) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// seek は絶対位置へ移動します。終端ちょうどまでは許容します。
func (s *streamReader) seek(offset int64) error {
	if offset < 0 || offset > int64(len(s.data)) {
		return fmt.Errorf("%w: seek to 0x%x (size 0x%x)", ErrOutOfRange, offset, len(s.data))
	}
	s.pos = offset
	return nil
}

// tell は現在位置を返します。
func (s *streamReader) tell() int64 {
	return s.pos
}

// readStruct は現在位置からリトルエンディアンで固定長構造体を読み込みます。
func (s *streamReader) readStruct(v any) error {
	return binary.Read(s, binary.LittleEndian, v)
}

// readBytes は現在位置から n バイトを読み込みます。
func (s *streamReader) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
