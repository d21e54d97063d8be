package service

import (
	"Arbor/internal/api/dto"
	"Arbor/internal/model"
	"Arbor/internal/pkg/consts"
	"Arbor/internal/pkg/redis"
	"Arbor/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

type VoteService interface {
	ToggleVote(ctx context.Context, voterID, commentID uint64, voteType string) (*dto.VoteStateDTO, error)
	GetCommentVoteCounts(ctx context.Context, commentID uint64) (*model.VoteCounts, error)
	GetVoterChoice(ctx context.Context, voterID, commentID uint64) (string, error)
	SyncVoteCounts(ctx context.Context, commentID uint64) error
}

type voteServiceImpl struct {
	voteRepo    repository.VoteRepo
	commentRepo repository.CommentRepo
}

func NewVoteService(voteRepo repository.VoteRepo, commentRepo repository.CommentRepo) VoteService {
	return &voteServiceImpl{
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
	}
}

// ToggleVote 同类型再投为撤销，异类型改票，同一用户对同一评论最多保留一条投票
func (s *voteServiceImpl) ToggleVote(ctx context.Context, voterID, commentID uint64, voteType string) (*dto.VoteStateDTO, error) {
	if voteType != model.VoteTypeLike && voteType != model.VoteTypeDislike {
		return nil, ErrVoteTypeInvalid
	}

	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	// 软删的评论仍可投票
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID == voterID {
		return nil, ErrVoteSelf
	}

	action, err := s.toggleOnce(ctx, voterID, commentID, voteType)
	if err != nil && isDuplicateError(err) {
		// 并发插入撞唯一键，重读一次按已存在的投票重放
		action, err = s.toggleOnce(ctx, voterID, commentID, voteType)
		if err != nil && isDuplicateError(err) {
			return nil, ErrVoteConflict
		}
	}
	if err != nil {
		return nil, err
	}

	s.invalidateVoteCounts(ctx, commentID)

	counts, err := s.getVoteCounts(ctx, commentID)
	if err != nil {
		return nil, err
	}
	userVote := voteType
	if action == consts.VoteActionRemoved {
		userVote = ""
	}
	return &dto.VoteStateDTO{
		Action:   action,
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
		UserVote: userVote,
		Total:    counts.Likes + counts.Dislikes,
	}, nil
}

func (s *voteServiceImpl) GetCommentVoteCounts(ctx context.Context, commentID uint64) (*model.VoteCounts, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return s.getVoteCounts(ctx, commentID)
}

func (s *voteServiceImpl) GetVoterChoice(ctx context.Context, voterID, commentID uint64) (string, error) {
	if voterID == 0 {
		return "", nil
	}
	vote, err := s.voteRepo.GetVote(ctx, commentID, voterID)
	if err != nil {
		return "", err
	}
	if vote == nil {
		return "", nil
	}
	return vote.Type, nil
}

// SyncVoteCounts 以数据库聚合结果刷新赞踩计数缓存
func (s *voteServiceImpl) SyncVoteCounts(ctx context.Context, commentID uint64) error {
	counts, err := s.voteRepo.GetVoteCounts(ctx, commentID)
	if err != nil {
		return err
	}
	idStr := strconv.FormatUint(commentID, 10)
	if err := redis.SetWithExpiration(ctx, consts.CommentVoteLikeKey+idStr, counts.Likes, cacheExpiration); err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.CommentVoteDislikeKey+idStr, counts.Dislikes, cacheExpiration)
}

// toggleOnce 执行一次切换，返回 added、changed 或 removed
func (s *voteServiceImpl) toggleOnce(ctx context.Context, voterID, commentID uint64, voteType string) (string, error) {
	vote, err := s.voteRepo.GetVote(ctx, commentID, voterID)
	if err != nil {
		return "", err
	}

	if vote == nil {
		err := s.voteRepo.CreateVote(ctx, &model.Vote{
			CommentID: commentID,
			VoterID:   voterID,
			Type:      voteType,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return "", err
		}
		return consts.VoteActionAdded, nil
	}

	if vote.Type == voteType {
		if err := s.voteRepo.DeleteVote(ctx, commentID, voterID); err != nil {
			return "", err
		}
		return consts.VoteActionRemoved, nil
	}

	if err := s.voteRepo.UpdateVoteType(ctx, commentID, voterID, voteType); err != nil {
		return "", err
	}
	return consts.VoteActionChanged, nil
}

func (s *voteServiceImpl) getVoteCounts(ctx context.Context, commentID uint64) (*model.VoteCounts, error) {
	idStr := strconv.FormatUint(commentID, 10)
	likes, likeErr := redis.GetInt64(ctx, consts.CommentVoteLikeKey+idStr)
	dislikes, dislikeErr := redis.GetInt64(ctx, consts.CommentVoteDislikeKey+idStr)
	if likeErr == nil && dislikeErr == nil {
		return &model.VoteCounts{Likes: likes, Dislikes: dislikes}, nil
	}
	counts, err := s.voteRepo.GetVoteCounts(ctx, commentID)
	if err != nil {
		return nil, err
	}
	_ = redis.SetWithExpiration(ctx, consts.CommentVoteLikeKey+idStr, counts.Likes, cacheExpiration)
	_ = redis.SetWithExpiration(ctx, consts.CommentVoteDislikeKey+idStr, counts.Dislikes, cacheExpiration)
	return counts, nil
}

func (s *voteServiceImpl) invalidateVoteCounts(ctx context.Context, commentID uint64) {
	idStr := strconv.FormatUint(commentID, 10)
	_ = redis.DeleteKey(ctx, consts.CommentVoteLikeKey+idStr)
	_ = redis.DeleteKey(ctx, consts.CommentVoteDislikeKey+idStr)
	_ = redis.SAdd(ctx, consts.CommentVoteDirtyKey, commentID)
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
