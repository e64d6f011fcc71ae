// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shiroemons/go-vnpack/internal/vnpack/config"
	"github.com/shiroemons/go-vnpack/internal/vnpack/fileutil"
	"github.com/shiroemons/go-vnpack/internal/vnpack/interfaces"
	"github.com/shiroemons/go-vnpack/pkg/arcdec"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config   *config.Config
	logger   *config.DebugLogger
	registry *arcdec.Registry
	fs       interfaces.FileSystem
	out      io.Writer
	errOut   io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Registry   *arcdec.Registry
	Out        io.Writer
	ErrOut     io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := config.NewDebugLogger(cfg.DebugMode)

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのレジストリを設定
	registry := opts.Registry
	if registry == nil {
		registry = arcdec.NewRegistry()
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	return &App{
		config:   cfg,
		logger:   logger,
		registry: registry,
		fs:       fs,
		out:      out,
		errOut:   errOut,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run() error {
	if a.config.ArchivePath == "" {
		return ErrNoArchive
	}

	a.logger.Printf("アーカイブファイル %s を読み込みます...\n", a.config.ArchivePath)
	data, err := a.fs.ReadFile(a.config.ArchivePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadArchive, a.config.ArchivePath, err)
	}

	decoder, name, err := a.selectDecoder(data)
	if err != nil {
		return err
	}
	a.logger.Printf("フォーマット %s として解析します\n", name)

	meta, err := decoder.ReadMeta(a.logger, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMeta, err)
	}

	if a.config.ListOnly {
		a.listEntries(meta)
		return nil
	}

	return a.extractEntries(decoder, data, meta)
}

// selectDecoder は設定に応じてデコーダーを選択します。
// フォーマット指定がない場合は自動判定を行います。
func (a *App) selectDecoder(data []byte) (arcdec.Decoder, string, error) {
	if a.config.Format != "" {
		decoder, err := a.registry.Create(a.config.Format)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrCreateDecoder, err)
		}
		return decoder, a.config.Format, nil
	}

	name, decoder, err := a.registry.AutoDetect(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrCreateDecoder, err)
	}
	return decoder, name, nil
}

// listEntries はエントリの一覧を表示します
func (a *App) listEntries(meta *arcdec.ArchiveMeta) {
	for _, entry := range meta.Entries {
		fmt.Fprintf(a.out, "%10d  %s\n", entry.Size, entry.Path)
	}
	fmt.Fprintf(a.out, "%d 件のエントリが見つかりました\n", len(meta.Entries))
}

// extractEntries は全エントリを出力ディレクトリに展開します。
// 個々のエントリの失敗は警告として報告し、残りの展開は継続します。
func (a *App) extractEntries(decoder arcdec.Decoder, data []byte, meta *arcdec.ArchiveMeta) error {
	extracted := 0
	for _, entry := range meta.Entries {
		file, err := decoder.ReadFile(data, meta, entry)
		if err != nil {
			fmt.Fprintf(a.errOut, "警告: %s を抽出できません: %v\n", entry.Path, err)
			continue
		}

		outputPath := filepath.Join(a.config.OutputDir, fileutil.SanitizeEntryPath(file.Name))
		if a.config.DryRun {
			fmt.Fprintf(a.out, "(dry-run) %s (%d bytes)\n", outputPath, len(file.Data))
			extracted++
			continue
		}

		if err := fileutil.SaveFile(a.fs, outputPath, file.Data); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFile, err)
		}
		fmt.Fprintf(a.out, "%s (%d bytes)\n", outputPath, len(file.Data))
		extracted++
	}

	fmt.Fprintf(a.out, "%d / %d 件のエントリを展開しました\n", extracted, len(meta.Entries))
	return nil
}
