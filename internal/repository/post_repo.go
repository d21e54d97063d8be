package repository

import (
	"Arbor/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo interface {
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	UpsertPost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// GetPost 查询帖子投影，不存在时返回 nil
func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// UpsertPost 写入或刷新帖子投影，消费按至少一次投递，重放的消息按主键冲突覆盖
func (s PostRepoImpl) UpsertPost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"author_id", "is_deleted", "updated_at"}),
	}).Create(post).Error
}

func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
