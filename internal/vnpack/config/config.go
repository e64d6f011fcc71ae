// Package config はvnpackコマンドの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	ArchivePath string
	Format      string
	OutputDir   string
	ListOnly    bool
	DebugMode   bool
	DryRun      bool
	ShowVersion bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  --archive string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to archive file (e.g. game.exe)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -a string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to archive file (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -f string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tarchive format (e.g. microsoft/exe). If omitted, auto-detection is attempted.")
		fmt.Fprintln(flag.CommandLine.Output(), "  -l\tlist entries without extracting")
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput directory for the extracted files (default \".\")")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --dry-run")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tperform a dry run without writing output files")
		fmt.Fprintln(flag.CommandLine.Output(), "  -n\tperform a dry run without writing output files (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	// アーカイブフラグ
	flag.StringVar(&config.ArchivePath, "archive", "", "path to archive file (e.g. game.exe)")
	flag.StringVar(&config.ArchivePath, "a", "", "path to archive file (e.g. game.exe) (shorthand)")

	// フォーマットフラグ
	flag.StringVar(&config.Format, "f", "", "archive format (e.g. microsoft/exe)")

	// 一覧表示のみ
	flag.BoolVar(&config.ListOnly, "l", false, "list entries without extracting")

	// 出力ディレクトリ
	flag.StringVar(&config.OutputDir, "o", ".", "output directory for the extracted files")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// ドライランモード
	flag.BoolVar(&config.DryRun, "dry-run", false, "perform a dry run without writing output files")
	flag.BoolVar(&config.DryRun, "n", false, "perform a dry run without writing output files (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	// 位置引数でもアーカイブを指定できる
	if config.ArchivePath == "" && flag.NArg() > 0 {
		config.ArchivePath = flag.Arg(0)
	}

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("vnpack version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Printf(format, a...)
	}
}
