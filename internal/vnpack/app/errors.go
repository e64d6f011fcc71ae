package app

import "errors"

var (
	// ErrNoArchive はアーカイブファイルが指定されていない場合のエラー
	ErrNoArchive = errors.New("アーカイブファイルが指定されていません。-a フラグまたは引数で指定してください")

	// ErrReadArchive はアーカイブの読み込みに失敗した場合のエラー
	ErrReadArchive = errors.New("アーカイブファイルの読み込みに失敗しました")

	// ErrCreateDecoder はデコーダーの作成に失敗した場合のエラー
	ErrCreateDecoder = errors.New("デコーダーの作成に失敗しました")

	// ErrReadMeta はアーカイブの解析に失敗した場合のエラー
	ErrReadMeta = errors.New("アーカイブの解析に失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")
)
