// Package fonts 提供内置字体数据，使渲染不依赖系统字体。
package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Faces lists the built-in faces in a stable order.
var Faces = []string{"regular", "bold"}

// Load 返回内置字体的 TTF 数据，name 可写为 "embed:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "embed:")))
	switch key {
	case "", "regular", "go-regular":
		return goregular.TTF, nil
	case "bold", "go-bold":
		return gobold.TTF, nil
	default:
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
}
