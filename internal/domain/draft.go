package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Draft 表示一份持久化保存的画板文档。页面数据以 JSON 文本存储，
// 其形状与实时房间的 Page/Element 完全一致，便于双向导入导出。
type Draft struct {
	ID               uint      `gorm:"primaryKey"`                                             // 草稿唯一标识符 (主键)
	OwnerID          uint      `gorm:"index;not null;uniqueIndex:idx_owner_title"`             // 所有者用户 ID
	Title            string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_owner_title"` // 标题，同一所有者下唯一
	Pages            string    `gorm:"type:longtext;not null"`                                 // 页面数组的 JSON 序列化
	CurrentPageIndex int       `gorm:"not null;default:0"`                                     // 保存时的当前页游标
	IsPublic         bool      `gorm:"not null;default:false"`                                 // 是否公开可读
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// SetPages 将页面列表序列化为 JSON 并写入 Pages 字段。
func (d *Draft) SetPages(pages []Page) error {
	bytes, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("failed to marshal draft pages: %w", err)
	}
	d.Pages = string(bytes)
	return nil
}

// ParsePages 将 Pages 字段 (JSON 字符串) 解析为页面列表。
// 空字段视为没有页面，返回空列表。
func (d *Draft) ParsePages() ([]Page, error) {
	if d.Pages == "" || d.Pages == "null" {
		return []Page{}, nil
	}
	var pages []Page
	if err := json.Unmarshal([]byte(d.Pages), &pages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft pages: %w", err)
	}
	return pages, nil
}
