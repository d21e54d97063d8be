package model

import (
	"time"
)

// Post 是内容服务 posts 表的本地投影，由 Canal 消费链路维护。
// 评论挂载校验只依赖帖子是否存在与删除状态。
type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_id" json:"authorId"`
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}
