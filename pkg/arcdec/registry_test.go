package arcdec

import (
	"errors"
	"testing"
)

// fakeDecoder はレジストリテスト用のスタブです。
type fakeDecoder struct {
	magic byte
}

func (d *fakeDecoder) IsRecognized(data []byte) bool {
	return len(data) > 0 && data[0] == d.magic
}

func (d *fakeDecoder) ReadMeta(logger Logger, data []byte) (*ArchiveMeta, error) {
	return &ArchiveMeta{}, nil
}

func (d *fakeDecoder) ReadFile(data []byte, meta *ArchiveMeta, entry *Entry) (*File, error) {
	return &File{Name: entry.Path}, nil
}

func TestRegistry_Defaults(t *testing.T) {
	registry := NewRegistry()

	names := registry.Names()
	if len(names) == 0 || names[0] != "microsoft/exe" {
		t.Fatalf("Names() = %v, want [microsoft/exe ...]", names)
	}

	decoder, err := registry.Create("microsoft/exe")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, ok := decoder.(*EXEDecoder); !ok {
		t.Errorf("Create() = %T, want *EXEDecoder", decoder)
	}
}

func TestRegistry_Create_Unknown(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Create("unknown/format"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Create() error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register("microsoft/exe", func() Decoder { return &fakeDecoder{} })
	if !errors.Is(err, ErrDuplicateDecoder) {
		t.Errorf("Register() error = %v, want ErrDuplicateDecoder", err)
	}
}

func TestRegistry_AutoDetect(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("fake/a", func() Decoder { return &fakeDecoder{magic: 'A'} }); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register("fake/b", func() Decoder { return &fakeDecoder{magic: 'B'} }); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"PEイメージ", buildTestPE(), "microsoft/exe"},
		{"フォーマットA", []byte{'A', 0x00}, "fake/a"},
		{"フォーマットB", []byte{'B', 0x00}, "fake/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, decoder, err := registry.AutoDetect(tt.data)
			if err != nil {
				t.Fatalf("AutoDetect() error: %v", err)
			}
			if name != tt.expected {
				t.Errorf("AutoDetect() name = %q, want %q", name, tt.expected)
			}
			if decoder == nil {
				t.Error("AutoDetect() decoder is nil")
			}
		})
	}
}

func TestRegistry_AutoDetect_FirstMatchWins(t *testing.T) {
	registry := NewRegistry()
	// 同じ入力を認識するデコーダを 2 つ登録し、登録順で先勝ちになることを確認
	if err := registry.Register("fake/first", func() Decoder { return &fakeDecoder{magic: 'X'} }); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register("fake/second", func() Decoder { return &fakeDecoder{magic: 'X'} }); err != nil {
		t.Fatal(err)
	}

	name, _, err := registry.AutoDetect([]byte{'X'})
	if err != nil {
		t.Fatalf("AutoDetect() error: %v", err)
	}
	if name != "fake/first" {
		t.Errorf("AutoDetect() name = %q, want %q", name, "fake/first")
	}
}

func TestRegistry_AutoDetect_NoMatch(t *testing.T) {
	registry := NewRegistry()

	if _, _, err := registry.AutoDetect([]byte{0xDE, 0xAD}); !errors.Is(err, ErrNoDecoderFound) {
		t.Errorf("AutoDetect() error = %v, want ErrNoDecoderFound", err)
	}
}
