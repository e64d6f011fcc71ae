// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-vnpack/internal/vnpack/interfaces"
)

// EntryPathSep はアーカイブ内のエントリパスの区切り文字です。
// 全角スラッシュを使うことで、ASCIIの "/" や "\" を含むエントリ名と衝突しません。
const EntryPathSep = "／"

// invalidChars はファイル名として使用できない文字の集合
const invalidChars = `<>:"/\|?*`

// SanitizeEntryPath はアーカイブ内のエントリパスをOSのファイルパスに変換します。
// 区切り文字ごとにサブディレクトリとなり、各要素内の使用できない文字は
// アンダースコアに置き換えられます。
func SanitizeEntryPath(entryPath string) string {
	parts := strings.Split(entryPath, EntryPathSep)
	for i, part := range parts {
		parts[i] = sanitizeComponent(part)
	}
	return filepath.Join(parts...)
}

// SaveFile は親ディレクトリを作成してからファイルを書き込みます
func SaveFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreateDirectory, dir, err)
	}
	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFile, outputPath, err)
	}
	return nil
}

// sanitizeComponent はパスの1要素をファイル名として安全な形に変換します
func sanitizeComponent(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(invalidChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Trim(b.String(), " .")
	if cleaned == "" {
		return "_"
	}
	return cleaned
}
