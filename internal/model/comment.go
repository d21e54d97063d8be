package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_post_id" json:"postId"`
	AuthorID  uint64    `gorm:"not null" json:"authorId"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	ParentID  *uint64   `gorm:"index:idx_parent_id" json:"parentId"` // NULL 表示顶级评论
	Depth     int       `gorm:"not null;default:0" json:"depth"`     // 顶级评论为 0
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
