// teabox-term 在终端中运行一个关卡
//
// 用法：
//
//	go run ./cmd/teabox-term -level the_great_gap
//
// 按键：空格 暂停，r 重开，t 开关物理，q 退出
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/olekspickle/chai-reaction/pkg/embedded"
	"github.com/olekspickle/chai-reaction/pkg/game"
	"github.com/olekspickle/chai-reaction/pkg/termview"
)

var (
	dataFlag  = flag.String("data", "data", "data 目录（包含 config.yaml）")
	levelFlag = flag.String("level", "", "关卡 ID 或关卡 YAML 路径，默认第一关")
	seedFlag  = flag.Int64("seed", 1, "发射器随机数种子")
	logFlag   = flag.String("log", "", "日志文件（终端被界面占用，默认不输出日志）")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "teabox-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logFlag == "" {
		log.SetOutput(io.Discard)
	} else {
		f, err := os.Create(*logFlag)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := embedded.Init(os.DirFS(*dataFlag)); err != nil {
		return err
	}
	assets, _ := embedded.FS()
	cfg, levels, err := game.LoadFromFS(assets)
	if err != nil {
		return err
	}
	level, err := levels.ResolveAsset(*levelFlag)
	if err != nil {
		return err
	}
	sim, err := game.NewSimulation(cfg, level, assets, *seedFlag)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := termview.NewRunner(screen, game.NewGameState(sim), cfg.FixedTimestep)
	runner.OnEvents = func(events []game.Event) {
		for _, e := range events {
			if e.Type == game.EventLevelComplete {
				screen.Beep()
			}
		}
	}
	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
