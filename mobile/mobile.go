//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把 data/ 复制到 mobile/data/：
//
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.olekspickle.chai -o build/android/chai.aar -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/olekspickle/chai-reaction/pkg/app"
	"github.com/olekspickle/chai-reaction/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	if err := embedded.Init(dataFS); err != nil {
		log.Fatalf("资源初始化失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
