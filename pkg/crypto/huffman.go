package crypto

import (
	"errors"
	"fmt"
)

const (
	// huffmanNodeCount はノード配列の容量。0〜255 はリテラル値、
	// 256〜511 が内部ノード用のスロットです。
	huffmanNodeCount = 512

	// huffmanRootBase は内部ノードの最初のスロット番号。
	huffmanRootBase = 256
)

// ErrTreeOverflow はビットストリームが許容量を超える内部ノードを要求した
// 場合のエラーです。
var ErrTreeOverflow = errors.New("huffman tree node limit exceeded")

// huffmanTree はビットストリーム自身に直列化されたハフマン木です。
// nodes[bit][index] が index 番の内部ノードの子を指し、256 未満の値は
// リテラルバイトを表す終端です。
type huffmanTree struct {
	nodes [2][huffmanNodeCount]uint16
	size  int // 次に割り当てる内部ノードスロット
}

// フレームは構築スタックの 1 段。pos の内部ノードに対して child 番目の
// 子をこれから埋めることを表します。
type huffmanFrame struct {
	pos   int
	child int
}

// buildHuffmanTree はビットストリームを消費しながら木を復元し、根の
// ノード番号を返します。フラグビット 1 は内部ノード (両方の子が続く)、
// 0 は続く 8bit をリテラル値とする葉です。再帰の代わりに明示的な
// スタックを使い、ノード枯渇時は ErrTreeOverflow を返します。
func buildHuffmanTree(br *BitReader) (*huffmanTree, int, error) {
	t := &huffmanTree{size: huffmanRootBase}

	if br.Read(1) == 0 {
		// 根そのものがリテラルの退化した木
		return t, int(br.Read(8)), nil
	}

	root, err := t.alloc()
	if err != nil {
		return nil, 0, err
	}

	stack := make([]huffmanFrame, 0, huffmanNodeCount-huffmanRootBase)
	stack = append(stack, huffmanFrame{pos: root})
	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		if frame.child == 2 {
			stack = stack[:len(stack)-1]
			continue
		}
		if br.Read(1) == 0 {
			t.nodes[frame.child][frame.pos] = uint16(br.Read(8))
			frame.child++
			continue
		}
		pos, err := t.alloc()
		if err != nil {
			return nil, 0, err
		}
		t.nodes[frame.child][frame.pos] = uint16(pos)
		frame.child++
		stack = append(stack, huffmanFrame{pos: pos})
	}
	return t, root, nil
}

// alloc は次の内部ノードスロットを払い出します。
func (t *huffmanTree) alloc() (int, error) {
	if t.size >= huffmanNodeCount {
		return 0, ErrTreeOverflow
	}
	pos := t.size
	t.size++
	return pos, nil
}

// UnHuffman はストリーム先頭に直列化されたハフマン木を復元し、宣言された
// 元サイズ origSize になるまで復号します。出力長は常に origSize と一致します。
func UnHuffman(input []byte, origSize int) ([]byte, error) {
	if origSize < 0 {
		return nil, fmt.Errorf("invalid original size: %d", origSize)
	}
	br := NewBitReader(input)
	tree, root, err := buildHuffmanTree(br)
	if err != nil {
		return nil, err
	}

	output := make([]byte, origSize)
	for i := range output {
		n := root
		for n >= huffmanRootBase && n < huffmanNodeCount {
			n = int(tree.nodes[br.Read(1)][n])
		}
		output[i] = byte(n)
	}
	return output, nil
}
