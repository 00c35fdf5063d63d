package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olekspickle/chai-reaction/pkg/app"
	"github.com/olekspickle/chai-reaction/pkg/embedded"
)

var (
	levelFlag   = flag.String("level", "", "关卡 ID 或关卡 YAML 路径（默认从存档继续）")
	seedFlag    = flag.Int64("seed", 1, "发射器随机数种子")
	verboseFlag = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()

	if err := embedded.Init(dataFS); err != nil {
		log.Fatal(err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verboseFlag,
		Level:   *levelFlag,
		Seed:    *seedFlag,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Shutdown()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Chai Reaction")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Settings().GetSettings().Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
