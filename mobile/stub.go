//go:build !mobile

// Package mobile 是 ebitenmobile 的绑定入口，只在 -tags mobile 时有内容；
// 普通构建下这个文件让 ./... 仍然能找到包。
package mobile
