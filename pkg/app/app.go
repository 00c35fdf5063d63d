// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/olekspickle/chai-reaction/internal/sound"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/embedded"
	"github.com/olekspickle/chai-reaction/pkg/game"
	"github.com/olekspickle/chai-reaction/pkg/render"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 540
)

// maxStepsPerFrame 单帧最多推进的模拟步数
const maxStepsPerFrame = 5

// messageDuration 提示文字显示时间（秒）
const messageDuration = 3.0

// partKeys 数字键选择工具栏中的零件
var partKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 关卡 ID 或关卡 YAML 路径，为空则从存档的最高关卡开始
	Level string
	// Seed 发射器随机数种子
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg    *config.GameConfig
	assets fs.FS
	seed   int64

	levels   *game.LevelManager
	settings *game.SettingsManager
	progress *game.ProgressManager
	audio    *AudioManager
	renderer *render.Renderer

	state      *game.GameState
	levelIndex int // 不在关卡列表中时为 -1
	clock      FixedStepper

	selected     int // PlaceableParts 中选中的零件
	message      string
	messageTimer float64
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	assets, err := embedded.FS()
	if err != nil {
		return nil, err
	}
	gameCfg, levels, err := game.LoadFromFS(assets)
	if err != nil {
		return nil, fmt.Errorf("游戏数据加载失败: %w", err)
	}

	// gdata 打不开时进入降级模式，设置和进度只保存在内存中
	gdataManager, err := gdata.Open(gdata.Config{AppName: "chai_reaction"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (progress will not be saved)", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager, gameCfg.Sound)
	if err != nil {
		return nil, err
	}
	progress, err := game.NewProgressManager(gdataManager)
	if err != nil {
		return nil, err
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(int(sound.SampleRate))

	a := &App{
		cfg:      gameCfg,
		assets:   assets,
		seed:     cfg.Seed,
		levels:   levels,
		settings: settings,
		progress: progress,
		audio:    NewAudioManager(audioContext, settings),
		renderer: render.NewRenderer(render.NewCamera(ScreenWidth, ScreenHeight, 0, 0)),
		clock:    FixedStepper{Step: gameCfg.FixedTimestep, MaxSteps: maxStepsPerFrame},
	}

	level, err := a.startLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if err := a.loadLevel(level); err != nil {
		return nil, err
	}
	return a, nil
}

// startLevel 命令行指定的关卡，否则为存档中已解锁的最高关卡
func (a *App) startLevel(arg string) (*config.LevelConfig, error) {
	if arg != "" {
		return a.levels.ResolveAsset(arg)
	}
	index := a.progress.HighestLevel()
	if index >= a.levels.Count() {
		index = a.levels.Count() - 1
	}
	if index < 0 {
		index = 0
	}
	level, err := a.levels.Level(index)
	if err == nil {
		log.Printf("[App] Loading from save: level %d = %s", index, level.ID)
	}
	return level, err
}

func (a *App) loadLevel(level *config.LevelConfig) error {
	sim, err := game.NewSimulation(a.cfg, level, a.assets, a.seed)
	if err != nil {
		return fmt.Errorf("关卡 %s 初始化失败: %w", level.ID, err)
	}
	a.state = game.NewGameState(sim)
	a.levelIndex = -1
	if index, ok := a.levels.IndexOf(level.ID); ok {
		a.levelIndex = index
	}
	a.clock.Reset()
	a.showMessage(level.Name)
	log.Printf("[App] Starting level: %s", level.ID)
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := a.handleInput(); err != nil {
		return err
	}

	frame := 1.0 / float64(ebiten.TPS())
	sim := a.state.Simulation()
	for steps := a.clock.Advance(frame); steps > 0; steps-- {
		sim.Step(a.cfg.FixedTimestep)
	}
	a.handleEvents(sim.Events())

	if a.messageTimer > 0 {
		a.messageTimer -= frame
	}
	return nil
}

func (a *App) handleInput() error {
	sim := a.state.Simulation()

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		sim.SetPaused(!sim.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if sim.TogglePhysics() {
			a.showMessage("physics on")
		} else {
			a.showMessage("physics off")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s := a.settings.GetSettings()
		a.settings.SetSoundEnabled(!s.SoundEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.state.Restart(); err != nil {
			return err
		}
		a.clock.Reset()
		a.showMessage("restart")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := a.nextLevel(); err != nil {
			a.showMessage(err.Error())
		}
	}

	for i, key := range partKeys {
		if i < len(game.PlaceableParts) && inpututil.IsKeyJustPressed(key) {
			a.selected = i
		}
	}

	ptr := readPointer()
	if ptr.Action == pointerNone {
		return nil
	}
	wx, wy := a.renderer.Camera().ScreenToWorld(float64(ptr.X), float64(ptr.Y))
	id, onPart := PlacedPartAt(sim.Parts(), wx, wy)

	switch ptr.resolveTouch(onPart) {
	case pointerPlace:
		partType := game.PlaceableParts[a.selected]
		if _, err := a.state.PlacePart(partType, wx, wy); err != nil {
			if errors.Is(err, game.ErrInsufficientZenPoints) {
				a.showMessage("not enough zen")
			} else {
				a.showMessage(err.Error())
			}
		}
	case pointerRemove:
		if onPart {
			if err := a.state.RemovePart(id); err != nil {
				log.Printf("[App] Warning: remove part %d: %v", id, err)
			}
		}
	}
	return nil
}

// nextLevel 当前关卡完成或下一关已解锁时进入下一关
func (a *App) nextLevel() error {
	if a.levelIndex < 0 {
		return fmt.Errorf("custom level has no next level")
	}
	next := a.levelIndex + 1
	if next >= a.levels.Count() {
		return fmt.Errorf("last level")
	}
	if !a.state.Simulation().Complete() && !a.progress.IsUnlocked(next) {
		return fmt.Errorf("level locked")
	}
	level, err := a.levels.Level(next)
	if err != nil {
		return err
	}
	return a.loadLevel(level)
}

func (a *App) handleEvents(events []game.Event) {
	if len(events) == 0 {
		return
	}
	a.audio.HandleEvents(events)

	for _, e := range events {
		if e.Type != game.EventLevelComplete {
			continue
		}
		level := a.state.Simulation().Level()
		if a.levelIndex >= 0 {
			a.progress.MarkCompleted(level.ID, a.levelIndex, a.state.Score())
			if err := a.progress.Save(); err != nil {
				log.Printf("[App] Warning: Failed to save progress: %v", err)
			}
		}
		a.showMessage("level complete! press N")
	}
}

func (a *App) showMessage(msg string) {
	a.message = msg
	a.messageTimer = messageDuration
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.state.Simulation())
	a.drawHUD(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Settings 设置管理器（main 中用于启动时全屏）
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Shutdown 退出前保存设置和进度
func (a *App) Shutdown() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
	if err := a.progress.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save progress: %v", err)
	}
}
