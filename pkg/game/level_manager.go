package game

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/embedded"
)

// ConfigFile data 目录中的全局配置文件名
const ConfigFile = "config.yaml"

// LoadFromFS 从 data 目录读取 config.yaml 和其中列出的全部关卡
func LoadFromFS(fsys fs.FS) (*config.GameConfig, *LevelManager, error) {
	data, err := fs.ReadFile(fsys, ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	levels, err := NewLevelManager(cfg, fsys)
	if err != nil {
		return nil, nil, err
	}
	return cfg, levels, nil
}

// LevelManager 按 config.yaml 中的顺序管理关卡
type LevelManager struct {
	levels []*config.LevelConfig
	byID   map[string]int
	files  map[string]bool // config.yaml 中列出的关卡文件
}

// NewLevelManager 从文件系统（data 目录）加载 cfg.Levels 中列出的全部关卡
func NewLevelManager(cfg *config.GameConfig, fsys fs.FS) (*LevelManager, error) {
	lm := &LevelManager{byID: make(map[string]int), files: make(map[string]bool)}
	for _, path := range cfg.Levels {
		lm.files[path] = true
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read level %s: %w", path, err)
		}
		level, err := config.ParseLevelConfig(data)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", path, err)
		}
		if err := lm.add(level); err != nil {
			return nil, err
		}
	}
	log.Printf("[LevelManager] 加载了 %d 个关卡", len(lm.levels))
	return lm, nil
}

func (lm *LevelManager) add(level *config.LevelConfig) error {
	if _, dup := lm.byID[level.ID]; dup {
		return fmt.Errorf("duplicate level id %q: %w", level.ID, config.ErrInvalidValue)
	}
	lm.byID[level.ID] = len(lm.levels)
	lm.levels = append(lm.levels, level)
	return nil
}

// Count 关卡数量
func (lm *LevelManager) Count() int {
	return len(lm.levels)
}

// Level 按序号取关卡
func (lm *LevelManager) Level(index int) (*config.LevelConfig, error) {
	if index < 0 || index >= len(lm.levels) {
		return nil, fmt.Errorf("level index %d: %w", index, ErrNoSuchLevel)
	}
	return lm.levels[index], nil
}

// LevelByID 按 ID 取关卡
func (lm *LevelManager) LevelByID(id string) (*config.LevelConfig, error) {
	index, ok := lm.byID[id]
	if !ok {
		return nil, fmt.Errorf("level %q: %w", id, ErrNoSuchLevel)
	}
	return lm.levels[index], nil
}

// IndexOf 关卡的序号
func (lm *LevelManager) IndexOf(id string) (int, bool) {
	index, ok := lm.byID[id]
	return index, ok
}

// Next 下一关；已经是最后一关时返回 ErrNoSuchLevel
func (lm *LevelManager) Next(id string) (*config.LevelConfig, error) {
	index, ok := lm.byID[id]
	if !ok {
		return nil, fmt.Errorf("level %q: %w", id, ErrNoSuchLevel)
	}
	return lm.Level(index + 1)
}

// Resolve 解析命令行的 -level 参数：.yaml/.yml 结尾的视为磁盘路径，否则为关卡 ID；
// 空字符串表示第一关
func (lm *LevelManager) Resolve(arg string) (*config.LevelConfig, error) {
	if arg == "" {
		return lm.Level(0)
	}
	if isLevelFile(arg) {
		if _, err := os.Stat(arg); err == nil {
			return config.LoadLevelConfig(arg)
		}
	}
	return lm.LevelByID(arg)
}

// ResolveAsset 与 Resolve 相同，但先在 data 资源中查找关卡文件
// （如 "levels/the_sink.yaml"，可以是 config.yaml 中没有列出的关卡）
func (lm *LevelManager) ResolveAsset(arg string) (*config.LevelConfig, error) {
	if !isLevelFile(arg) || !embedded.Exists(arg) {
		return lm.Resolve(arg)
	}
	data, err := embedded.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", arg, err)
	}
	level, err := config.ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", arg, err)
	}
	return level, nil
}

// UnlistedLevels data/levels 下存在但没有写进 config.yaml 的关卡文件
func (lm *LevelManager) UnlistedLevels() ([]string, error) {
	var unlisted []string
	for _, pattern := range []string{"levels/*.yaml", "levels/*.yml"} {
		matches, err := embedded.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			if !lm.files[path] {
				unlisted = append(unlisted, path)
			}
		}
	}
	return unlisted, nil
}

func isLevelFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
