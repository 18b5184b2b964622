package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/spaceataque/pkg/app"
	"github.com/decker502/spaceataque/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Override the embedded game config with a YAML file")
	seed := flag.Int64("seed", 0, "Fixed random seed (0 = time based)")
	noAudio := flag.Bool("no-audio", false, "Disable audio output")
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		NoAudio:    *noAudio,
	})
	if err != nil {
		// 配置错误是致命的，日志可能已被丢弃，直接写到 stderr
		fmt.Fprintf(os.Stderr, "spaceataque: %v\n", err)
		os.Exit(1)
	}

	if err := gameApp.Run("Space Ataque"); err != nil {
		fmt.Fprintf(os.Stderr, "spaceataque: %v\n", err)
		os.Exit(1)
	}
	log.Printf("[Main] Bye")
}
