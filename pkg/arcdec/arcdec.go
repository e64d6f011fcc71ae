// Package arcdec はゲームエンジンの独自アーカイブコンテナからアセットを
// 取り出すためのデコーダ抽象を提供します。
//
// 各フォーマットは Decoder インターフェースを実装し、Registry に登録する
// ことで自動判別の対象になります。
//
// 基本的な使い方:
//
//	registry := arcdec.NewRegistry()
//	name, decoder, err := registry.AutoDetect(data)
//	if err != nil {
//	    return err
//	}
//	meta, err := decoder.ReadMeta(logger, data)
//	for _, entry := range meta.Entries {
//	    file, err := decoder.ReadFile(data, meta, entry)
//	    // 取り出したファイルを処理...
//	}
package arcdec

// Logger はデコーダが診断メッセージを書き出すための最小インターフェースです。
// config.DebugLogger がこれを満たします。
type Logger interface {
	Printf(format string, a ...any)
}

// discardLogger は何も出力しない Logger 実装
type discardLogger struct{}

func (discardLogger) Printf(format string, a ...any) {}

// Entry はアーカイブ内の 1 つの論理ファイルを表します。
// メタデータスキャン中に生成された後は読み取り専用です。
type Entry struct {
	// Path はアーカイブ内での論理パス。1 つの ArchiveMeta 内で一意です。
	Path string

	// Offset は入力バイト列内でのデータ先頭位置
	Offset uint64

	// Size はデータのバイト数
	Size uint64
}

// ArchiveMeta はデコーダが発見した論理ファイルの一覧です。
// Entries の並びは発見順で、同じ入力に対して常に同じ順序になります。
type ArchiveMeta struct {
	Entries []*Entry
}

// File は抽出された名前付きバイト列です。
type File struct {
	Name string
	Data []byte
}

// Decoder はアーカイブフォーマット 1 つ分の recognize / list / extract
// 契約です。
type Decoder interface {
	// IsRecognized は入力がこのフォーマットかどうかを安価に判定します。
	// ヘッダ最小サイズに満たない入力でもパニックせず false を返します。
	IsRecognized(data []byte) bool

	// ReadMeta はコンテナ全体の構造を解析してエントリ一覧を返します。
	// 構造が壊れている場合は ErrCorruptData を返します。
	// ペイロードのバイト列はここでは読み出しません。
	ReadMeta(logger Logger, data []byte) (*ArchiveMeta, error)

	// ReadFile は entry の指す範囲を取り出して名前付きファイルとして
	// 返します。範囲が入力の外に出る場合は ErrOutOfRange を返します。
	ReadFile(data []byte, meta *ArchiveMeta, entry *Entry) (*File, error)
}
