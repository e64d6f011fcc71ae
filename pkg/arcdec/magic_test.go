package arcdec

import "testing"

func TestFile_GuessExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		expected string
	}{
		{
			name:     "PNG",
			fileName: "BITMAP／1",
			data:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00},
			expected: "BITMAP／1.png",
		},
		{
			name:     "JPEG",
			fileName: "photo",
			data:     []byte{0xFF, 0xD8, 0xFF, 0xE0},
			expected: "photo.jpg",
		},
		{
			name:     "WAVE",
			fileName: "RC_DATA／bgm",
			data:     append([]byte("RIFF\x24\x00\x00\x00"), []byte("WAVEfmt ")...),
			expected: "RC_DATA／bgm.wav",
		},
		{
			name:     "BMP",
			fileName: "image",
			data:     []byte("BM\x00\x00"),
			expected: "image.bmp",
		},
		{
			name:     "不明な内容は変更しない",
			fileName: "STRING／7",
			data:     []byte{0x01, 0x02, 0x03},
			expected: "STRING／7",
		},
		{
			name:     "空データ",
			fileName: "empty",
			data:     []byte{},
			expected: "empty",
		},
		{
			name:     "既に同じ拡張子なら付け足さない",
			fileName: "icon.png",
			data:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
			expected: "icon.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &File{Name: tt.fileName, Data: tt.data}
			file.GuessExtension()
			if file.Name != tt.expected {
				t.Errorf("GuessExtension() Name = %q, want %q", file.Name, tt.expected)
			}
		})
	}
}
