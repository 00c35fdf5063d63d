//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 桌面端调试触摸界面时设置为 1
const MobileEmulateEnv = "CHAI_MOBILE_EMULATE"

// IsMobile 是否使用触摸界面（桌面端默认 false）
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
