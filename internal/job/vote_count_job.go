package job

import (
	"Arbor/internal/pkg/consts"
	"Arbor/internal/pkg/logger"
	"Arbor/internal/pkg/redis"
	"Arbor/internal/pkg/util"
	"Arbor/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// VoteCountJob 定期把脏评论的赞踩计数从数据库回灌到缓存
type VoteCountJob struct {
	voteSvc service.VoteService
}

func NewVoteCountJob(voteSvc service.VoteService) *VoteCountJob {
	return &VoteCountJob{
		voteSvc: voteSvc,
	}
}

func (s *VoteCountJob) Run() {
	traceID := "job-vote-count-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 先把脏集合改名，避免和投票写入的新脏数据互相干扰
	processingKey := consts.CommentVoteDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.CommentVoteDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get vote dirty set error", "err", err)
		return
	}

	commentIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert vote set to int slice error", "err", err)
		return
	}

	log.InfoContext(ctx, "start syncing comment vote counts", "count", len(commentIDs))

	successCount := 0
	for _, cid := range commentIDs {
		if err := s.voteSvc.SyncVoteCounts(ctx, cid); err != nil {
			log.ErrorContext(ctx, "sync vote counts error", "cid", cid, "err", err)
			continue
		}
		successCount++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete vote processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync vote counts success",
		"total_count", len(commentIDs),
		"success_count", successCount)
}
