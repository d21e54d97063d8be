package repository

import (
	"Arbor/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type VoteRepo interface {
	CreateVote(ctx context.Context, vote *model.Vote) error
	GetVote(ctx context.Context, commentID, voterID uint64) (*model.Vote, error)
	UpdateVoteType(ctx context.Context, commentID, voterID uint64, voteType string) error
	DeleteVote(ctx context.Context, commentID, voterID uint64) error
	GetVoteCounts(ctx context.Context, commentID uint64) (*model.VoteCounts, error)
	GetVoteCountsByCommentIDs(ctx context.Context, commentIDs []uint64) (map[uint64]*model.VoteCounts, error)
	GetVoterChoices(ctx context.Context, voterID uint64, commentIDs []uint64) (map[uint64]string, error)
}

type VoteRepoImpl struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) VoteRepo {
	return &VoteRepoImpl{db}
}

func (s *VoteRepoImpl) CreateVote(ctx context.Context, vote *model.Vote) error {
	return s.db.WithContext(ctx).Create(vote).Error
}

func (s *VoteRepoImpl) GetVote(ctx context.Context, commentID, voterID uint64) (*model.Vote, error) {
	var vote model.Vote
	err := s.db.WithContext(ctx).
		Where("comment_id = ? AND voter_id = ?", commentID, voterID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

func (s *VoteRepoImpl) UpdateVoteType(ctx context.Context, commentID, voterID uint64, voteType string) error {
	return s.db.WithContext(ctx).Model(&model.Vote{}).
		Where("comment_id = ? AND voter_id = ?", commentID, voterID).
		Update("type", voteType).Error
}

func (s *VoteRepoImpl) DeleteVote(ctx context.Context, commentID, voterID uint64) error {
	return s.db.WithContext(ctx).
		Where("comment_id = ? AND voter_id = ?", commentID, voterID).
		Delete(&model.Vote{}).Error
}

func (s *VoteRepoImpl) GetVoteCounts(ctx context.Context, commentID uint64) (*model.VoteCounts, error) {
	counts, err := s.GetVoteCountsByCommentIDs(ctx, []uint64{commentID})
	if err != nil {
		return nil, err
	}
	if c, ok := counts[commentID]; ok {
		return c, nil
	}
	return &model.VoteCounts{}, nil
}

// GetVoteCountsByCommentIDs 按评论批量聚合赞踩数量，没有投票记录的评论不出现在结果里
func (s *VoteRepoImpl) GetVoteCountsByCommentIDs(ctx context.Context, commentIDs []uint64) (map[uint64]*model.VoteCounts, error) {
	result := make(map[uint64]*model.VoteCounts, len(commentIDs))
	if len(commentIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		CommentID uint64
		Type      string
		Total     int64
	}
	err := s.db.WithContext(ctx).Model(&model.Vote{}).
		Select("comment_id, type, COUNT(*) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts, ok := result[row.CommentID]
		if !ok {
			counts = &model.VoteCounts{}
			result[row.CommentID] = counts
		}
		switch row.Type {
		case model.VoteTypeLike:
			counts.Likes = row.Total
		case model.VoteTypeDislike:
			counts.Dislikes = row.Total
		}
	}
	return result, nil
}

// GetVoterChoices 批量查询某用户在一组评论上的投票选择
func (s *VoteRepoImpl) GetVoterChoices(ctx context.Context, voterID uint64, commentIDs []uint64) (map[uint64]string, error) {
	result := make(map[uint64]string, len(commentIDs))
	if voterID == 0 || len(commentIDs) == 0 {
		return result, nil
	}
	var votes []*model.Vote
	err := s.db.WithContext(ctx).
		Where("voter_id = ? AND comment_id IN ?", voterID, commentIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	for _, vote := range votes {
		result[vote.CommentID] = vote.Type
	}
	return result, nil
}
