package unimath

import (
	"sync"

	"github.com/riverfjs/unimath/internal/types"
)

// 导出类型别名
type RenderConfig = types.RenderConfig
type Entity = types.Entity

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}
