package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/olekspickle/chai-reaction/internal/sound"
	"github.com/olekspickle/chai-reaction/pkg/game"
)

// AudioManager 音效管理器
// 职责：
//   - 把模拟事件映射为音效
//   - 从 SettingsManager 读取音量，每次播放时应用
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager // 可为 nil，此时按满音量播放
	players         map[sound.Cue]*audio.Player
}

// NewAudioManager 创建音效管理器，音效在创建时合成一次
//
// 参数：
//   - ctx: ebiten 音频上下文，采样率必须为 sound.SampleRate
//   - sm: 设置管理器，可为 nil
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[sound.Cue]*audio.Player),
	}
	for cue, pcm := range sound.NewBank(1) {
		am.players[cue] = ctx.NewPlayerFromBytes(pcm)
	}
	log.Printf("[AudioManager] 合成了 %d 个音效", len(am.players))
	return am
}

// PlayCue 播放一个音效；声音关闭或找不到音效时返回 false
func (am *AudioManager) PlayCue(cue sound.Cue) bool {
	volume := am.volume()
	if volume <= 0 {
		return false
	}
	player, ok := am.players[cue]
	if !ok {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", cue, err)
	}
	player.Play()
	return true
}

// HandleEvents 为一批模拟事件播放音效，同一帧的同类事件只播放一次
func (am *AudioManager) HandleEvents(events []game.Event) {
	played := make(map[sound.Cue]bool)
	for _, e := range events {
		cue, ok := CueForEvent(e.Type)
		if !ok || played[cue] {
			continue
		}
		played[cue] = am.PlayCue(cue)
	}
}

func (am *AudioManager) volume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().EffectiveSFXVolume()
}

// CueForEvent 事件对应的音效
func CueForEvent(t game.EventType) (sound.Cue, bool) {
	switch t {
	case game.EventSensorSatisfied:
		return sound.CueBrewChime, true
	case game.EventLevelComplete:
		return sound.CueLevelComplete, true
	case game.EventCupBrewed:
		return sound.CueCupDrop, true
	}
	return 0, false
}
