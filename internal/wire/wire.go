package wire

import (
	"Arbor/internal/api"
	"Arbor/internal/api/config"
	"Arbor/internal/api/handler"
	"Arbor/internal/job"
	"Arbor/internal/pkg/cron"
	"Arbor/internal/pkg/kafka"
	"Arbor/internal/repository"
	"Arbor/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	commentRepo := repository.NewCommentRepo(db)
	voteRepo := repository.NewVoteRepo(db)
	postRepo := repository.NewPostRepository(db)

	commentService := service.NewCommentService(commentRepo, voteRepo, postRepo)
	voteService := service.NewVoteService(voteRepo, commentRepo)

	handlers := &api.HandlersGroup{
		CommentHandler: handler.NewCommentHandler(commentService),
		VoteHandler:    handler.NewVoteHandler(voteService),
	}

	router := api.SetupRouter(handlers)

	voteCountJob := job.NewVoteCountJob(voteService)
	cronMgr := cron.NewCronManager(voteCountJob)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, postRepo)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
