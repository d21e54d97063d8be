package kafka

import (
	"Arbor/internal/api/config"
	"Arbor/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 持有帖子投影消费组的生命周期
type ConsumerManager struct {
	postConsumer sarama.ConsumerGroup
	postHandler  sarama.ConsumerGroupHandler
	topic        string
}

func NewConsumerManager(cfg *config.Config, postRepo repository.PostRepo) (*ConsumerManager, error) {
	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPostConsumer.GroupID, consumerConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		postConsumer: group,
		postHandler:  NewPostsHandler(postRepo),
		topic:        cfg.KafkaPostConsumer.Topic,
	}, nil
}

// Start 启动帖子投影消费并阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	// Return.Errors 打开后必须有人消费错误通道
	go func() {
		for err := range m.postConsumer.Errors() {
			log.Error("post consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("post projection consumer started", "topic", m.topic)
		for {
			// Consume 在再均衡后返回，循环重新加入消费组
			if err := m.postConsumer.Consume(ctx, []string{m.topic}, m.postHandler); err != nil {
				log.Error("post projection consume error", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("post projection consumer shutting down")

	if err := m.postConsumer.Close(); err != nil {
		log.Error("close post consumer error", "err", err)
	}

	return nil
}
