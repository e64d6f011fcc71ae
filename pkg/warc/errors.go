package warc

import "errors"

var (
	// ErrNotSupported は未対応の圧縮形式を伸長しようとした場合のエラー
	ErrNotSupported = errors.New("サポートされていない圧縮形式です")

	// ErrDecompressFailed は圧縮データの伸長に失敗した場合のエラー
	ErrDecompressFailed = errors.New("圧縮データの伸長に失敗しました")
)
