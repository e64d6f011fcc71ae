package mocks

import (
	"bytes"
	"errors"

	"github.com/shiroemons/go-vnpack/pkg/arcdec"
)

// MockDecoder はテスト用のデコーダーモックです。
// Magicで始まるデータを認識し、Entriesをそのまま返します。
type MockDecoder struct {
	Magic       []byte
	Entries     []*arcdec.Entry
	ReadMetaErr error
	ReadFileErr error
	FailPaths   map[string]bool
}

// NewMockDecoder は新しいMockDecoderを作成します
func NewMockDecoder(magic []byte) *MockDecoder {
	return &MockDecoder{Magic: magic}
}

// IsRecognized はデータがこのモックの形式か確認します
func (d *MockDecoder) IsRecognized(data []byte) bool {
	return bytes.HasPrefix(data, d.Magic)
}

// ReadMeta はエントリ一覧を返します
func (d *MockDecoder) ReadMeta(logger arcdec.Logger, data []byte) (*arcdec.ArchiveMeta, error) {
	if d.ReadMetaErr != nil {
		return nil, d.ReadMetaErr
	}
	return &arcdec.ArchiveMeta{Entries: d.Entries}, nil
}

// ReadFile はエントリの内容を切り出して返します
func (d *MockDecoder) ReadFile(data []byte, meta *arcdec.ArchiveMeta, entry *arcdec.Entry) (*arcdec.File, error) {
	if d.ReadFileErr != nil {
		return nil, d.ReadFileErr
	}
	if d.FailPaths[entry.Path] {
		return nil, errors.New("mock read failure")
	}
	end := entry.Offset + entry.Size
	if end > uint64(len(data)) {
		return nil, arcdec.ErrOutOfRange
	}
	return &arcdec.File{Name: entry.Path, Data: data[entry.Offset:end]}, nil
}
