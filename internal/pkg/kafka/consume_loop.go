package kafka

import (
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

const (
	retryBaseInterval = 100 * time.Millisecond
	retryMaxInterval  = 5 * time.Second
)

type logicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// consumeOrdered 逐条处理分区消息，投影必须按源库变更顺序落地，
// 不能并发也不能越过失败的消息提交位点。
func consumeOrdered(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic logicFunc) error {
	ctx := session.Context()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := retryUntilDone(ctx, msg, logic); err != nil {
				// 只有会话结束才会失败，位点不动，交回 Consume 重新入组
				return nil
			}
			session.MarkMessage(msg, "")
		case <-ctx.Done():
			return nil
		}
	}
}

// retryUntilDone 指数退避重试到成功，只有会话结束才放弃
func retryUntilDone(ctx context.Context, msg *sarama.ConsumerMessage, logic logicFunc) error {
	interval := retryBaseInterval
	for {
		err := logic(ctx, msg)
		if err == nil {
			return nil
		}

		log.ErrorContext(ctx, "process message error, will retry",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > retryMaxInterval {
			interval = retryMaxInterval
		}
	}
}
