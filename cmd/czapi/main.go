// Combat Zone MMAマーケティングサイトのバックエンドAPIサーバー。
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/czmma/czapi/internal/app"
)

func main() {
	// .envはローカル開発用。無ければ環境変数のみで動く。
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "czapi: %v\n", err)
		os.Exit(1)
	}
}
