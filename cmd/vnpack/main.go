package main

import (
	"fmt"
	"os"

	"github.com/shiroemons/go-vnpack/internal/vnpack/app"
	"github.com/shiroemons/go-vnpack/internal/vnpack/config"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	// アプリケーションの実行
	application := app.New(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
