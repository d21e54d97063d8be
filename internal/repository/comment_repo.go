package repository

import (
	"Arbor/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetTopLevelComments(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetChildComments(ctx context.Context, parentIDs []uint64) ([]*model.Comment, error)
	GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetTopLevelCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetChildCount(ctx context.Context, commentID uint64) (int64, error)
	MarkCommentDeleted(ctx context.Context, commentID uint64, content string) (int64, error)
	HardDeleteComment(ctx context.Context, commentID uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID 按 ID 查询评论，软删的评论同样返回，不存在时返回 nil
func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelComments 分页获取帖子的顶级评论，软删的评论保留在列表中占位
func (s *CommentRepoImpl) GetTopLevelComments(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

// GetChildComments 批量获取一层直接子评论，按时间正序
func (s *CommentRepoImpl) GetChildComments(ctx context.Context, parentIDs []uint64) ([]*model.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// GetCommentCountByPostID 统计帖子的全部评论数，软删的评论计算在内
func (s *CommentRepoImpl) GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) GetTopLevelCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) GetChildCount(ctx context.Context, commentID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("parent_id = ?", commentID).
		Count(&count).Error
	return count, err
}

// MarkCommentDeleted 将评论内容置换为删除占位文本并标记删除，返回受影响行数。
// is_deleted 条件保证重复删除不会二次生效。
func (s *CommentRepoImpl) MarkCommentDeleted(ctx context.Context, commentID uint64, content string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Updates(map[string]interface{}{
			"content":    content,
			"is_deleted": true,
		})
	return res.RowsAffected, res.Error
}

// HardDeleteComment 物理删除评论并级联清理投票记录，两步在同一事务内提交
func (s *CommentRepoImpl) HardDeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, commentID).Error
	})
}
