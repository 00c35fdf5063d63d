// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存 data 目录的文件系统，供关卡、配置、流场纹理等加载使用。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init() 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化资源文件系统
//
// root 可以是根目录的 embed.FS（包含 data/ 目录），也可以是 os.DirFS 等
// 任意文件系统；root 中存在 data/ 目录时自动进入该目录
func Init(root fs.FS) error {
	if root == nil {
		return fmt.Errorf("embedded.Init: nil filesystem")
	}
	data := root
	if info, err := fs.Stat(root, "data"); err == nil && info.IsDir() {
		sub, err := fs.Sub(root, "data")
		if err != nil {
			return fmt.Errorf("embedded.Init: %w", err)
		}
		data = sub
	}
	dataFS = data
	initialized = true
	return nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// FS 返回以 data 目录为根的文件系统
func FS() (fs.FS, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	return dataFS, nil
}

// clean 标准化路径：正斜杠，去掉 "./" 和 "data/" 前缀
func clean(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	return strings.TrimPrefix(path, "data/")
}

// Open 打开资源文件，路径可以带 "data/" 前缀
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	return dataFS.Open(clean(path))
}

// ReadFile 读取资源文件内容
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.ReadFile(dataFS, clean(path))
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配文件，返回相对 data 目录的路径
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.Glob(dataFS, clean(pattern))
}
