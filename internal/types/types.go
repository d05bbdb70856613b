package types

// Entity 表示一段高亮文本在输出中的位置
type Entity struct {
	Type       string `json:"type"`
	Offset     int    `json:"offset"`
	Length     int    `json:"length"`
	ByteOffset int    `json:"byte_offset"`
	ByteLength int    `json:"byte_length"`
}

// ToDict 将 Entity 转换为 map
func (e Entity) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type":        e.Type,
		"offset":      e.Offset,
		"length":      e.Length,
		"byte_offset": e.ByteOffset,
		"byte_length": e.ByteLength,
	}
}

// RenderConfig 渲染配置
type RenderConfig struct {
	// Strict 为 true 时渲染失败直接返回错误，否则回退到原始表达式
	Strict bool
	// Theme 内置主题名或主题文件路径
	Theme string
	// NFC 对最终文本做 Unicode NFC 规范化
	NFC bool
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Strict: false,
		Theme:  "default",
		NFC:    true,
	}
}
