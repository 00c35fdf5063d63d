// teabox 无界面运行一个关卡，打印结果
//
// 用法：
//
//	go run ./cmd/teabox -level the_sink -ticks 3600
//	go run ./cmd/teabox -level ./my_level.yaml -verbose
//
// 关卡在 -ticks 内完成时退出码为 0，否则为 1；加载失败为 2
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/olekspickle/chai-reaction/pkg/embedded"
	"github.com/olekspickle/chai-reaction/pkg/game"
)

var (
	dataFlag    = flag.String("data", "data", "data 目录（包含 config.yaml）")
	levelFlag   = flag.String("level", "", "关卡 ID 或关卡 YAML 路径，默认第一关")
	ticksFlag   = flag.Int("ticks", 3600, "最多推进的步数")
	dtFlag      = flag.Float64("dt", 0, "步长（秒），0 表示使用 config.yaml 的 fixed_timestep")
	seedFlag    = flag.Int64("seed", 1, "发射器随机数种子")
	fullFlag    = flag.Bool("full", false, "完成后继续运行到 -ticks")
	listFlag    = flag.Bool("list", false, "列出所有关卡后退出")
	verboseFlag = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := embedded.Init(os.DirFS(*dataFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "teabox: %v\n", err)
		return 2
	}
	assets, _ := embedded.FS()
	cfg, levels, err := game.LoadFromFS(assets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "teabox: %v\n", err)
		return 2
	}

	if *listFlag {
		for i := 0; i < levels.Count(); i++ {
			level, _ := levels.Level(i)
			fmt.Printf("%d  %-20s %s (zen %d)\n", i, level.ID, level.Name, level.InitialZenPoints)
		}
		unlisted, err := levels.UnlistedLevels()
		if err != nil {
			fmt.Fprintf(os.Stderr, "teabox: %v\n", err)
			return 2
		}
		for _, path := range unlisted {
			fmt.Printf("-  %-20s (not in %s)\n", path, game.ConfigFile)
		}
		return 0
	}

	level, err := levels.ResolveAsset(*levelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "teabox: %v\n", err)
		return 2
	}
	sim, err := game.NewSimulation(cfg, level, assets, *seedFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "teabox: %v\n", err)
		return 2
	}

	dt := *dtFlag
	if dt <= 0 {
		dt = cfg.FixedTimestep
	}
	res := game.RunFor(sim, *ticksFlag, dt, !*fullFlag)

	fmt.Printf("level:     %s (%s)\n", level.ID, level.Name)
	fmt.Printf("ticks:     %d (%.2fs)\n", res.Ticks, sim.Elapsed())
	fmt.Printf("particles: %d\n", res.Particles)
	fmt.Printf("cups:      %d\n", res.Cups)
	for _, s := range sim.Sensors() {
		fmt.Printf("sensor %d:  satisfied=%v samples=%d avg={heat %.2f tea %.2f milk %.2f sugar %.2f}\n",
			s.ID, s.Satisfied, s.SampleCount, s.Average.Heat, s.Average.Tea, s.Average.Milk, s.Average.Sugar)
	}
	if *verboseFlag {
		for _, e := range res.Events {
			fmt.Printf("event:     tick %d %s entity=%d count=%d\n", e.Tick, e.Type, e.Entity, e.Count)
		}
	}

	if !res.Complete {
		fmt.Println("result:    incomplete")
		return 1
	}
	fmt.Printf("result:    complete at tick %d\n", res.CompletedAt)
	return 0
}
