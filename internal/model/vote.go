package model

import (
	"time"
)

const (
	VoteTypeLike    = "like"
	VoteTypeDislike = "dislike"
)

type Vote struct {
	CommentID uint64    `gorm:"primaryKey" json:"commentId"`
	VoterID   uint64    `gorm:"primaryKey" json:"voterId"`
	Type      string    `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Vote) TableName() string {
	return "votes"
}

// VoteCounts 单条评论的在线投票聚合
type VoteCounts struct {
	Likes    int64
	Dislikes int64
}
