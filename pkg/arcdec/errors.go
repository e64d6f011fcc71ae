package arcdec

import "errors"

var (
	// ErrCorruptData はコンテナ構造が壊れている場合のエラー
	ErrCorruptData = errors.New("アーカイブの構造が壊れています")

	// ErrOutOfRange は読み出し範囲が入力の外に出る場合のエラー
	ErrOutOfRange = errors.New("読み出し範囲が入力データの外を指しています")

	// ErrUnknownFormat は未登録のフォーマット名を指定した場合のエラー
	ErrUnknownFormat = errors.New("不明なアーカイブ形式です")

	// ErrNoDecoderFound はどのデコーダも入力を認識しなかった場合のエラー
	ErrNoDecoderFound = errors.New("対応するアーカイブ形式が見つかりませんでした")

	// ErrDuplicateDecoder は同じ名前のデコーダを二重登録した場合のエラー
	ErrDuplicateDecoder = errors.New("デコーダ名が重複しています")
)
