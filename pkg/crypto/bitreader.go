package crypto

import "encoding/binary"

// BitReader はバイト列から MSB ファーストでビット単位に値を読み出します。
// 内部バッファは 32bit ワードで、残りが 4 バイト以上ある間はリトルエンディアンの
// u32 として補充し、末尾の端数は 1 バイトずつ上位へ詰め込みます (C++版互換)。
type BitReader struct {
	data   []byte
	pos    int
	buffer uint32
	count  uint // バッファ内の有効ビット数
}

// NewBitReader は新しい BitReader を作成します。
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// fetch はバッファを補充します。ストリーム終端以降は何も足されないため、
// それ以降の読み出しはゼロビットで埋まります。
func (br *BitReader) fetch() {
	if len(br.data)-br.pos >= 4 {
		br.buffer = binary.LittleEndian.Uint32(br.data[br.pos:])
		br.pos += 4
		return
	}
	if br.pos >= len(br.data) {
		br.buffer = 0
		return
	}
	for br.pos < len(br.data) {
		br.buffer = br.buffer<<8 | uint32(br.data[br.pos])
		br.pos++
	}
}

// Read は指定されたビット数 (1〜32) を読み込んで返します。
// バッファに足りない場合は、手持ちのビットを結果の上位へ退避してから補充を
// 繰り返します。終端を越えた分はゼロビットになります (終端マーカーのない
// フォーマット向けの仕様)。
func (br *BitReader) Read(numBits uint) uint32 {
	var value uint32
	if br.count < numBits {
		for {
			numBits -= br.count
			mask := uint32(uint64(1)<<br.count - 1)
			value |= (br.buffer & mask) << numBits
			br.fetch()
			br.count = 32
			if numBits <= 32 {
				break
			}
		}
	}
	br.count -= numBits
	mask := uint32(uint64(1)<<numBits - 1)
	return value | (br.buffer>>br.count)&mask
}
