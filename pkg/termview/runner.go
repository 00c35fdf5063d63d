package termview

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olekspickle/chai-reaction/pkg/game"
)

// Runner 驱动终端显示：固定步长推进模拟，处理键盘输入
type Runner struct {
	screen tcell.Screen
	state  *game.GameState
	dt     float64
	margin float64

	// OnEvents 每帧收到的模拟事件（可为 nil）
	OnEvents func([]game.Event)
}

// NewRunner 创建终端运行器，screen 必须已经 Init
func NewRunner(screen tcell.Screen, state *game.GameState, dt float64) *Runner {
	return &Runner{screen: screen, state: state, dt: dt, margin: 10}
}

// Run 运行直到 ctx 取消或按下 q/Esc
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(r.dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := r.HandleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick 推进一步并重绘
func (r *Runner) Tick() {
	sim := r.state.Simulation()
	sim.Step(r.dt)
	if events := sim.Events(); len(events) > 0 && r.OnEvents != nil {
		r.OnEvents(events)
	}
	Render(r.screen, sim, r.margin)
	r.screen.Show()
}

// HandleEvent 处理一个终端事件，返回是否退出
func (r *Runner) HandleEvent(ev tcell.Event) (bool, error) {
	sim := r.state.Simulation()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case ' ', 'p':
				sim.SetPaused(!sim.Paused())
			case 't':
				sim.TogglePhysics()
			case 'r':
				if err := r.state.Restart(); err != nil {
					return false, err
				}
				log.Printf("[termview] 关卡 %s 重新开始", sim.Level().ID)
			}
		}
	}
	return false, nil
}
