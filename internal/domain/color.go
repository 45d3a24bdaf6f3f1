package domain

// palette 是参与者标识色的固定调色板。
var palette = []string{
	"#3B82F6",
	"#22C55E",
	"#A855F7",
	"#EC4899",
	"#F97316",
	"#06B6D4",
	"#6366F1",
	"#F43F5E",
}

// ColorFromName 根据显示名确定性地从调色板中选取一种颜色。
// 同名必然同色（在同一调色板下）；哈希为经典的 hash*31+c 滚动哈希。
func ColorFromName(name string) string {
	var hash int32
	for _, c := range name {
		hash = c + ((hash << 5) - hash)
	}
	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return palette[h%int64(len(palette))]
}
