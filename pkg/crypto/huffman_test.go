package crypto

import (
	"bytes"
	"errors"
	"testing"
)

// ビット列をパックして BitReader の消費順 (32bit LE ワードの MSB から) に
// 合わせた入力バイト列を作ります。
func packBits(bits []int) []byte {
	words := (len(bits) + 31) / 32
	out := make([]byte, words*4)
	for w := 0; w < words; w++ {
		var v uint32
		for i := 0; i < 32; i++ {
			idx := w*32 + i
			if idx < len(bits) && bits[idx] != 0 {
				v |= 1 << (31 - i)
			}
		}
		out[w*4+0] = byte(v)
		out[w*4+1] = byte(v >> 8)
		out[w*4+2] = byte(v >> 16)
		out[w*4+3] = byte(v >> 24)
	}
	return out
}

// byteBits はバイト値を MSB からのビット列に展開します。
func byteBits(b byte) []int {
	bits := make([]int, 8)
	for i := 0; i < 8; i++ {
		bits[i] = int(b>>(7-i)) & 1
	}
	return bits
}

func TestUnHuffman_TwoLeafTree(t *testing.T) {
	// 木: 根(内部) -> 葉'A', 葉'B'。続くビット 0,1,1,0 で "ABBA"
	var bits []int
	bits = append(bits, 1)                   // 根は内部ノード
	bits = append(bits, 0)                   // 左は葉
	bits = append(bits, byteBits('A')...)
	bits = append(bits, 0)                   // 右は葉
	bits = append(bits, byteBits('B')...)
	bits = append(bits, 0, 1, 1, 0)

	got, err := UnHuffman(packBits(bits), 4)
	if err != nil {
		t.Fatalf("UnHuffman() error: %v", err)
	}
	if !bytes.Equal(got, []byte("ABBA")) {
		t.Errorf("UnHuffman() = %q, want %q", got, "ABBA")
	}
}

func TestUnHuffman_SingleLeafTree(t *testing.T) {
	// 根そのものが葉の退化した木。ビット消費なしで宣言サイズ分リテラルが並ぶ
	var bits []int
	bits = append(bits, 0)
	bits = append(bits, byteBits('A')...)

	got, err := UnHuffman(packBits(bits), 5)
	if err != nil {
		t.Fatalf("UnHuffman() error: %v", err)
	}
	if !bytes.Equal(got, []byte("AAAAA")) {
		t.Errorf("UnHuffman() = %q, want %q", got, "AAAAA")
	}
}

func TestUnHuffman_OutputLength(t *testing.T) {
	var bits []int
	bits = append(bits, 0)
	bits = append(bits, byteBits(0x00)...)

	for _, size := range []int{0, 1, 100, 4096} {
		got, err := UnHuffman(packBits(bits), size)
		if err != nil {
			t.Fatalf("UnHuffman(size=%d) error: %v", size, err)
		}
		if len(got) != size {
			t.Errorf("len(UnHuffman(size=%d)) = %d, want %d", size, len(got), size)
		}
	}
}

func TestUnHuffman_TreeOverflow(t *testing.T) {
	// 全ビットが 1 だと内部ノードの割り当てが尽きるまで再帰相当が続く
	input := bytes.Repeat([]byte{0xFF}, 64)

	_, err := UnHuffman(input, 16)
	if !errors.Is(err, ErrTreeOverflow) {
		t.Errorf("UnHuffman() error = %v, want ErrTreeOverflow", err)
	}
}

func TestUnHuffman_NegativeSize(t *testing.T) {
	if _, err := UnHuffman([]byte{0x00}, -1); err == nil {
		t.Error("UnHuffman(-1) should return error")
	}
}
