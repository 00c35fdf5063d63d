package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/olekspickle/chai-reaction/pkg/config"
)

// GameSettings 全局设置，不绑定到关卡
type GameSettings struct {
	// 音量 0.0 ~ 1.0，实际音效音量 = GeneralVolume * SFXVolume
	GeneralVolume float64 `yaml:"generalVolume"`
	MusicVolume   float64 `yaml:"musicVolume"`
	SFXVolume     float64 `yaml:"sfxVolume"`
	SoundEnabled  bool    `yaml:"soundEnabled"`

	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置，音量取自 config.yaml 的 sound 段
func DefaultSettings(sound config.SoundConfig) *GameSettings {
	return &GameSettings{
		GeneralVolume: sound.General,
		MusicVolume:   sound.Music,
		SFXVolume:     sound.SFX,
		SoundEnabled:  true,
	}
}

// EffectiveSFXVolume 音效实际音量，关闭声音时为 0
func (s *GameSettings) EffectiveSFXVolume() float64 {
	if !s.SoundEnabled {
		return 0
	}
	return s.GeneralVolume * s.SFXVolume
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	defaults     config.SoundConfig
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 没有存档时使用的音量
func NewSettingsManager(gdataManager *gdata.Manager, defaults config.SoundConfig) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
		settings:     DefaultSettings(defaults),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或没有存档时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings(sm.defaults)
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings(sm.defaults)
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings(sm.defaults)
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings(sm.defaults)
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置；降级模式下什么都不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSFXVolume 设置音效音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSFXVolume(volume float64) {
	sm.settings.SFXVolume = clampVolume(volume)
}

// SetGeneralVolume 设置总音量
func (sm *SettingsManager) SetGeneralVolume(volume float64) {
	sm.settings.GeneralVolume = clampVolume(volume)
}

// SetMusicVolume 设置音乐音量
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSoundEnabled 设置声音开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
