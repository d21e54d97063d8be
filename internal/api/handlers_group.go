package api

import "Arbor/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	CommentHandler *handler.CommentHandler
	VoteHandler    *handler.VoteHandler
}
