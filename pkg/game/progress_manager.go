package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Progress 关卡进度存档
type Progress struct {
	// HighestLevel 已解锁的最高关卡序号（完成第 i 关后解锁 i+1）
	HighestLevel int            `yaml:"highestLevel"`
	Completed    []string       `yaml:"completed"`
	BestScores   map[string]int `yaml:"bestScores"`
}

func newProgress() *Progress {
	return &Progress{BestScores: make(map[string]int)}
}

// ProgressManager 进度管理器
// 通过 gdata 持久化，gdataManager 为 nil 时只保存在内存中
type ProgressManager struct {
	gdataManager *gdata.Manager
	progress     *Progress
}

const (
	progressObject   = "progress"
	progressProperty = "levels"
)

// NewProgressManager 创建进度管理器并尝试加载存档
func NewProgressManager(gdataManager *gdata.Manager) (*ProgressManager, error) {
	pm := &ProgressManager{gdataManager: gdataManager, progress: newProgress()}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return pm, nil
}

// Load 从 gdata 加载进度
func (pm *ProgressManager) Load() error {
	if pm.gdataManager == nil || !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		pm.progress = newProgress()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		pm.progress = newProgress()
		return fmt.Errorf("failed to load progress: %w", err)
	}

	loaded := newProgress()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		pm.progress = newProgress()
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	sort.Strings(loaded.Completed)
	if loaded.BestScores == nil {
		loaded.BestScores = make(map[string]int)
	}
	pm.progress = loaded
	return nil
}

// Save 保存进度；降级模式下什么都不做
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// MarkCompleted 记录完成一关，返回是否刷新了最高分
func (pm *ProgressManager) MarkCompleted(levelID string, index, score int) bool {
	p := pm.progress
	if !pm.IsCompleted(levelID) {
		p.Completed = append(p.Completed, levelID)
		sort.Strings(p.Completed)
	}
	if index+1 > p.HighestLevel {
		p.HighestLevel = index + 1
	}

	best, ok := p.BestScores[levelID]
	if ok && score <= best {
		return false
	}
	p.BestScores[levelID] = score
	log.Printf("[ProgressManager] 关卡 %s 新纪录: %d", levelID, score)
	return true
}

// IsCompleted 关卡是否完成过
func (pm *ProgressManager) IsCompleted(levelID string) bool {
	i := sort.SearchStrings(pm.progress.Completed, levelID)
	return i < len(pm.progress.Completed) && pm.progress.Completed[i] == levelID
}

// BestScore 最高分
func (pm *ProgressManager) BestScore(levelID string) (int, bool) {
	score, ok := pm.progress.BestScores[levelID]
	return score, ok
}

// HighestLevel 已解锁的最高关卡序号
func (pm *ProgressManager) HighestLevel() int {
	return pm.progress.HighestLevel
}

// IsUnlocked 关卡序号是否已解锁（第 0 关总是解锁）
func (pm *ProgressManager) IsUnlocked(index int) bool {
	return index <= pm.progress.HighestLevel
}
