package kafka

import (
	"Arbor/internal/model"
	"Arbor/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// PostsHandler 消费上游内容服务 posts 表的 Canal 变更，维护本地帖子投影
type PostsHandler struct {
	postRepo repository.PostRepo
}

func NewPostsHandler(postRepo repository.PostRepo) *PostsHandler {
	return &PostsHandler{
		postRepo: postRepo,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := consumeOrdered(session, claim, s.logic)
	log.Info("topic-post consume claim end")
	return err
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		// 解码失败或非本表消息，重试不会变好，跳过并保留现场
		log.WarnContext(ctx, "skip unusable canal message",
			"topic", msg.Topic, "offset", msg.Offset, "err", err)
		return nil
	}

	for _, row := range canalMsg.Data {
		id := StrToUint64(row["id"])
		if id == 0 {
			// 数据本身残缺，重试也无法恢复，跳过
			log.WarnContext(ctx, "post row missing id, skipped", "table", canalMsg.Table)
			continue
		}

		if canalMsg.Type == DELETE {
			if err := s.postRepo.DeletePost(ctx, id); err != nil {
				return errors.Wrap(err, "delete post projection")
			}
			continue
		}

		post := &model.Post{
			ID:        id,
			AuthorID:  StrToUint64(row["user_id"]),
			IsDeleted: row["is_deleted"] == "1",
			CreatedAt: StrToDateTime(row["created_at"]),
			UpdatedAt: StrToDateTime(row["updated_at"]),
		}
		if err := s.postRepo.UpsertPost(ctx, post); err != nil {
			return errors.Wrap(err, "upsert post projection")
		}
	}
	return nil
}
