// spaceataque-tty 在终端里运行游戏（tcell 渲染，beep 合成音效）
//
// 用法：
//
//	go run ./cmd/spaceataque-tty --difficulty=hard --multiplayer
//	go run ./cmd/spaceataque-tty --continue
//
// 存档与设置和桌面版共享。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/embedded"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/terminal"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/gdamore/tcell/v2"
)

func main() {
	difficulty := flag.String("difficulty", "normal", "Difficulty: easy, normal or hard")
	multiplayer := flag.Bool("multiplayer", false, "Local two-player mode (arrows + WASD)")
	cont := flag.Bool("continue", false, "Continue from the saved game")
	configPath := flag.String("config", "", "Game config YAML (default: data/config/game.yaml under --root)")
	root := flag.String("root", ".", "Directory containing data/config")
	seed := flag.Int64("seed", 0, "Fixed random seed (0 = time based)")
	noAudio := flag.Bool("no-audio", false, "Disable synthesized sound")
	logFile := flag.String("log", "", "Write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail(fmt.Errorf("failed to open log file: %w", err))
		}
		defer f.Close()
		log.SetOutput(f)
	}

	diff, err := types.ParseDifficulty(*difficulty)
	if err != nil {
		fail(err)
	}

	// 工作目录下有 data/ 时从文件系统读取，否则使用内置默认值
	if _, err := os.Stat(filepath.Join(*root, config.DefaultGameConfigPath)); err == nil {
		rootFS := os.DirFS(*root)
		embedded.Init(rootFS, rootFS)
	}
	cfg, err := config.LoadGameConfigFrom(*configPath)
	if err != nil {
		fail(fmt.Errorf("failed to load game config: %w", err))
	}

	storage := game.OpenStorage(game.StorageAppName)
	settings := game.NewSettingsManager(storage)
	gate := game.NewPersistenceGate(game.NewSaveManager(storage), cfg)
	if *cont && !gate.HasSave() {
		fail(fmt.Errorf("no saved game to continue"))
	}

	var synth *terminal.Synth
	if !*noAudio {
		synth = terminal.NewSynth()
		if err := synth.Init(); err != nil {
			// 没有声卡也能玩
			log.Printf("[Main] Warning: %v (sound disabled)", err)
			synth = nil
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fail(fmt.Errorf("failed to create screen: %w", err))
	}
	if err := screen.Init(); err != nil {
		fail(fmt.Errorf("failed to initialize screen: %w", err))
	}
	screen.HideCursor()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	frontend := terminal.NewFrontend(screen, cfg, gate, synth, terminal.Options{
		Difficulty:  diff,
		Multiplayer: *multiplayer,
		Continue:    *cont,
		Seed:        *seed,
		Audio:       settings.Audio(),
	})
	frontend.Run()
	frontend.Close()

	screen.Fini()
	if synth != nil {
		synth.Close()
	}

	st := frontend.Controller().State()
	fmt.Printf("%s - phase %d, score %d (highscore %d)\n", st.Run, st.Phase, st.Score, max(st.Highscore, st.Score))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "spaceataque-tty: %v\n", err)
	os.Exit(1)
}
