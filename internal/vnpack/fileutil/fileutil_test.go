package fileutil

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shiroemons/go-vnpack/internal/vnpack/mocks"
)

func TestSaveFile(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	path := filepath.Join("out", "sub", "file.bin")

	if err := SaveFile(fs, path, []byte("data")); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if got := string(fs.Files[path]); got != "data" {
		t.Errorf("Expected 'data' at %s, got %q", path, got)
	}
	if !fs.Dirs[filepath.Join("out", "sub")] {
		t.Error("Expected parent directory to be created")
	}
}

func TestSaveFile_Error(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Error = errors.New("disk full")

	err := SaveFile(fs, "out/file.bin", []byte("data"))
	if !errors.Is(err, ErrCreateDirectory) {
		t.Errorf("Expected ErrCreateDirectory, got %v", err)
	}
}

func TestSanitizeEntryPath(t *testing.T) {
	tests := []struct {
		name      string
		entryPath string
		want      string
	}{
		{
			name:      "単純な名前",
			entryPath: "readme.txt",
			want:      "readme.txt",
		},
		{
			name:      "区切り文字がサブディレクトリになる",
			entryPath: "RC_DATA／1041",
			want:      filepath.Join("RC_DATA", "1041"),
		},
		{
			name:      "3階層のパス",
			entryPath: "BITMAP／TITLE／0",
			want:      filepath.Join("BITMAP", "TITLE", "0"),
		},
		{
			name:      "使用できない文字の置換",
			entryPath: `a<b>:c`,
			want:      "a_b__c",
		},
		{
			name:      "ASCIIスラッシュはディレクトリにならない",
			entryPath: `data/sub\dir`,
			want:      "data_sub_dir",
		},
		{
			name:      "制御文字の置換",
			entryPath: "na\x01me",
			want:      "na_me",
		},
		{
			name:      "末尾のドットと空白を除去",
			entryPath: "name. ",
			want:      "name",
		},
		{
			name:      "空の要素はアンダースコアになる",
			entryPath: "TYPE／",
			want:      filepath.Join("TYPE", "_"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeEntryPath(tt.entryPath)
			if got != tt.want {
				t.Errorf("SanitizeEntryPath(%q) = %q, want %q", tt.entryPath, got, tt.want)
			}
		})
	}
}
