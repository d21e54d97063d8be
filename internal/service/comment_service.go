package service

import (
	"Arbor/internal/api/dto"
	"Arbor/internal/model"
	"Arbor/internal/pkg/consts"
	"Arbor/internal/pkg/redis"
	"Arbor/internal/repository"
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jinzhu/copier"
)

type CommentService interface {
	CreateComment(ctx context.Context, authorID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentCreatedDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) (string, error)
	GetCommentTree(ctx context.Context, userID, postID uint64, page, pageSize int) (*dto.CommentPageDTO, error)
	GetPostCommentCount(ctx context.Context, postID uint64) (int64, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	voteRepo    repository.VoteRepo
	postRepo    repository.PostRepo
}

const cacheExpiration = 7 * 24 * time.Hour

func NewCommentService(
	commentRepo repository.CommentRepo,
	voteRepo repository.VoteRepo,
	postRepo repository.PostRepo,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		postRepo:    postRepo,
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, authorID, postID uint64, req *dto.CommentCreateReq) (*dto.CommentCreatedDTO, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentEmpty
	}
	if utf8.RuneCountInString(content) > consts.MaxCommentLength {
		return nil, ErrContentTooLong
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted {
		return nil, ErrPostNotFound
	}

	var parentID *uint64
	depth := 0

	if req.ParentID != nil && *req.ParentID > 0 {
		parent, err := s.commentRepo.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		// 软删的父评论仍保留在树里，允许继续回复
		if parent == nil {
			return nil, ErrParentNotFound
		}
		if parent.PostID != postID {
			return nil, ErrCrossPostReply
		}
		depth = parent.Depth + 1
		if depth > consts.MaxCommentDepth {
			return nil, ErrDepthExceeded
		}
		parentID = &parent.ID
	}

	comment := &model.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		ParentID:  parentID,
		Depth:     depth,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	_ = redis.DeleteKey(ctx, consts.PostCommentCountKey+strconv.FormatUint(postID, 10))

	return &dto.CommentCreatedDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		Depth:     comment.Depth,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// DeleteComment 有子评论时置换内容保留结构，无子评论时物理删除并级联清理投票
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) (string, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return "", err
	}
	if comment == nil {
		return "", ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return "", ErrNotCommentAuthor
	}
	if comment.IsDeleted {
		return "", ErrCommentAlreadyDeleted
	}

	childCount, err := s.commentRepo.GetChildCount(ctx, commentID)
	if err != nil {
		return "", err
	}

	if childCount > 0 {
		rows, err := s.commentRepo.MarkCommentDeleted(ctx, commentID, consts.DeletedContentText)
		if err != nil {
			return "", err
		}
		if rows == 0 {
			return "", ErrCommentAlreadyDeleted
		}
		// 软删后记录仍计入总数，评论数缓存无需失效
		return consts.DeleteActionContentDeleted, nil
	}

	// 计数和物理删除之间可能并发插入子评论，以计数时刻的结果为准
	if err := s.commentRepo.HardDeleteComment(ctx, commentID); err != nil {
		return "", err
	}

	idStr := strconv.FormatUint(commentID, 10)
	_ = redis.DeleteKey(ctx, consts.PostCommentCountKey+strconv.FormatUint(comment.PostID, 10))
	_ = redis.DeleteKey(ctx, consts.CommentVoteLikeKey+idStr)
	_ = redis.DeleteKey(ctx, consts.CommentVoteDislikeKey+idStr)

	return consts.DeleteActionCompletelyDeleted, nil
}

// GetCommentTree 分页获取顶级评论并逐层批量下探子评论，层级有上限，每层一次查询
func (s *commentServiceImpl) GetCommentTree(ctx context.Context, userID, postID uint64, page, pageSize int) (*dto.CommentPageDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted {
		return nil, ErrPostNotFound
	}

	roots, err := s.commentRepo.GetTopLevelComments(ctx, postID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	all := make([]*model.Comment, 0, len(roots))
	all = append(all, roots...)

	frontier := roots
	for level := 0; level < consts.MaxCommentDepth && len(frontier) > 0; level++ {
		parentIDs := make([]uint64, 0, len(frontier))
		for _, c := range frontier {
			parentIDs = append(parentIDs, c.ID)
		}
		children, err := s.commentRepo.GetChildComments(ctx, parentIDs)
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}

	allIDs := make([]uint64, 0, len(all))
	for _, c := range all {
		allIDs = append(allIDs, c.ID)
	}

	countsMap := s.batchGetVoteCounts(ctx, allIDs)
	choiceMap := s.batchGetVoterChoices(ctx, userID, allIDs)

	childrenMap := make(map[uint64][]*model.Comment)
	for _, c := range all {
		if c.ParentID != nil {
			childrenMap[*c.ParentID] = append(childrenMap[*c.ParentID], c)
		}
	}

	comments := make([]*dto.CommentDTO, 0, len(roots))
	for _, rc := range roots {
		comments = append(comments, s.buildCommentDTO(rc, childrenMap, countsMap, choiceMap))
	}

	total, err := s.GetPostCommentCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	topCount, err := s.commentRepo.GetTopLevelCountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	totalPages := int((topCount + int64(pageSize) - 1) / int64(pageSize))

	return &dto.CommentPageDTO{
		Comments:   comments,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		HasMore:    int64(page*pageSize) < topCount,
	}, nil
}

func (s *commentServiceImpl) GetPostCommentCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostCommentCountKey + strconv.FormatUint(postID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.commentRepo.GetCommentCountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *commentServiceImpl) buildCommentDTO(
	comment *model.Comment,
	childrenMap map[uint64][]*model.Comment,
	counts map[uint64]*model.VoteCounts,
	choices map[uint64]string,
) *dto.CommentDTO {
	item := &dto.CommentDTO{}
	_ = copier.Copy(item, comment)
	item.CreatedAt = comment.CreatedAt.Format("2006-01-02 15:04:05")

	if c, ok := counts[comment.ID]; ok {
		item.Likes = c.Likes
		item.Dislikes = c.Dislikes
	}
	item.UserVote = choices[comment.ID]

	children := childrenMap[comment.ID]
	if len(children) > 0 {
		item.Replies = make([]*dto.CommentDTO, 0, len(children))
		for _, child := range children {
			item.Replies = append(item.Replies, s.buildCommentDTO(child, childrenMap, counts, choices))
		}
	}
	return item
}

func (s *commentServiceImpl) batchGetVoteCounts(ctx context.Context, commentIDs []uint64) map[uint64]*model.VoteCounts {
	countsMap := make(map[uint64]*model.VoteCounts)
	if len(commentIDs) == 0 {
		return countsMap
	}

	keys := make([]string, 0, len(commentIDs)*2)
	for _, id := range commentIDs {
		idStr := strconv.FormatUint(id, 10)
		keys = append(keys, consts.CommentVoteLikeKey+idStr, consts.CommentVoteDislikeKey+idStr)
	}
	cacheData, _ := redis.MGetValue(ctx, keys...)

	var missIDs []uint64
	for _, id := range commentIDs {
		idStr := strconv.FormatUint(id, 10)
		likeStr, likeOK := cacheData[consts.CommentVoteLikeKey+idStr]
		dislikeStr, dislikeOK := cacheData[consts.CommentVoteDislikeKey+idStr]
		if likeOK && dislikeOK {
			likes, _ := strconv.ParseInt(likeStr, 10, 64)
			dislikes, _ := strconv.ParseInt(dislikeStr, 10, 64)
			countsMap[id] = &model.VoteCounts{Likes: likes, Dislikes: dislikes}
		} else {
			missIDs = append(missIDs, id)
		}
	}

	if len(missIDs) == 0 {
		return countsMap
	}

	dbCounts, err := s.voteRepo.GetVoteCountsByCommentIDs(ctx, missIDs)
	if err != nil {
		return countsMap
	}
	for _, id := range missIDs {
		c, ok := dbCounts[id]
		if !ok {
			c = &model.VoteCounts{}
		}
		countsMap[id] = c

		go func(id uint64, c model.VoteCounts) {
			bgCtx := context.Background()
			idStr := strconv.FormatUint(id, 10)
			_ = redis.SetWithExpiration(bgCtx, consts.CommentVoteLikeKey+idStr, c.Likes, cacheExpiration)
			_ = redis.SetWithExpiration(bgCtx, consts.CommentVoteDislikeKey+idStr, c.Dislikes, cacheExpiration)
		}(id, *c)
	}
	return countsMap
}

func (s *commentServiceImpl) batchGetVoterChoices(ctx context.Context, userID uint64, commentIDs []uint64) map[uint64]string {
	if userID == 0 || len(commentIDs) == 0 {
		return map[uint64]string{}
	}
	choices, err := s.voteRepo.GetVoterChoices(ctx, userID, commentIDs)
	if err != nil {
		return map[uint64]string{}
	}
	return choices
}
