// Package warc は Shiina Rio 系アーカイブのエントリ伸長パイプラインを実装します。
//
// サブフォーマットごとに復号と伸長の組み合わせが異なります:
//   - YH1: ワード単位の XOR 復号 + ストリーム直列化ハフマン
//   - YPK: ワード単位の XOR 復号 + zlib inflate
//   - YLZ: 未対応 (ErrNotSupported)
package warc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/shiroemons/go-vnpack/pkg/crypto"
)

// 復号キー (C++版互換)
const (
	yh1Key32  = 0x6393528E
	warcKey16 = 0x4B4D
)

// Method は伸長パイプラインのサブフォーマットを表します。
type Method int

const (
	// MethodYH1 はハフマン圧縮されたエントリです。
	MethodYH1 Method = iota

	// MethodYPK は zlib 圧縮されたエントリです。
	MethodYPK

	// MethodYLZ は未解析の独自圧縮です。伸長は常に失敗します。
	MethodYLZ
)

// String はサブフォーマット名を返します。
func (m Method) String() string {
	switch m {
	case MethodYH1:
		return "yh1"
	case MethodYPK:
		return "ypk"
	case MethodYLZ:
		return "ylz"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Decompress はサブフォーマットに応じた復号・伸長パイプラインを選択して
// 実行します。encrypted が真の場合のみ XOR 復号を先に適用します。
func Decompress(method Method, input []byte, origSize int, encrypted bool) ([]byte, error) {
	switch method {
	case MethodYH1:
		return DecompressYH1(input, origSize, encrypted)
	case MethodYPK:
		return DecompressYPK(input, origSize, encrypted)
	case MethodYLZ:
		return DecompressYLZ(input, origSize, encrypted)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotSupported, method)
}

// DecompressYH1 は YH1 エントリを伸長します。暗号化されている場合は各 32bit
// ワードを固定キーで XOR してから、ハフマン復号で origSize バイトを生成します。
// 入力は破壊しません。
func DecompressYH1(input []byte, origSize int, encrypted bool) ([]byte, error) {
	transient := append([]byte(nil), input...)
	if encrypted {
		crypto.XORWords(transient, yh1Key32^warcKey16)
	}
	return crypto.UnHuffman(transient, origSize)
}

// DecompressYPK は YPK エントリを伸長します。暗号化されている場合は 16bit キー
// を両半分に複製して全ビット反転した定数で各ワードを XOR し、端数バイトは
// 同じ定数の最下位バイトで XOR します。その後 zlib inflate に委譲します。
func DecompressYPK(input []byte, origSize int, encrypted bool) ([]byte, error) {
	transient := append([]byte(nil), input...)
	if encrypted {
		const key32 = ^uint32(warcKey16<<16 | warcKey16)
		crypto.XORWords(transient, key32)
		crypto.XOR(transient[len(transient)&^3:], byte(key32&0xFF))
	}

	zr, err := zlib.NewReader(bytes.NewReader(transient))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	defer zr.Close()

	output, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	return output, nil
}

// DecompressYLZ は YLZ エントリの伸長を試みます。アルゴリズムが未解析のため
// 常に ErrNotSupported を返します。呼び出し側はこれを恒久的な制限として
// 扱う必要があります (リトライしても結果は変わりません)。
func DecompressYLZ(input []byte, origSize int, encrypted bool) ([]byte, error) {
	return nil, fmt.Errorf("%w: ylz", ErrNotSupported)
}
