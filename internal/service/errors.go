package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrPostNotFound          = errors.New("帖子不存在")
	ErrCommentNotFound       = errors.New("评论不存在")
	ErrParentNotFound        = errors.New("父评论不存在")
	ErrContentEmpty          = errors.New("评论内容不能为空")
	ErrContentTooLong        = errors.New("评论内容超出长度限制")
	ErrDepthExceeded         = errors.New("评论层级超出限制")
	ErrCrossPostReply        = errors.New("父评论不属于该帖子")
	ErrCommentAlreadyDeleted = errors.New("评论已删除")
	ErrNotCommentAuthor      = errors.New("只能删除自己的评论")
	ErrVoteSelf              = errors.New("不能给自己的评论投票")
	ErrVoteTypeInvalid       = errors.New("投票类型错误")
	ErrVoteConflict          = errors.New("操作冲突，请重试")
	UnauthorizedError        = errors.New("权限不足")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrPostNotFound:          NotFound,
	ErrCommentNotFound:       NotFound,
	ErrParentNotFound:        NotFound,
	ErrContentEmpty:          BadRequest,
	ErrContentTooLong:        BadRequest,
	ErrDepthExceeded:         BadRequest,
	ErrCrossPostReply:        BadRequest,
	ErrCommentAlreadyDeleted: BadRequest,
	ErrNotCommentAuthor:      Forbidden,
	ErrVoteSelf:              BadRequest,
	ErrVoteTypeInvalid:       BadRequest,
	ErrVoteConflict:          Conflict,
	UnauthorizedError:        Unauthorized,
	UnExpectedError:          InternalServerError,
}
