package handler

import (
	"Arbor/internal/api/dto"
	"Arbor/internal/pkg/response"
	"Arbor/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type VoteHandler struct {
	voteSvc service.VoteService
}

func NewVoteHandler(voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{
		voteSvc: voteSvc,
	}
}

// GetVoteState 获取评论的投票状态
func (s *VoteHandler) GetVoteState(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	state := &dto.VoteStateDTO{}
	g, gCtx := errgroup.WithContext(c.Request.Context())

	g.Go(func() error {
		counts, err := s.voteSvc.GetCommentVoteCounts(gCtx, commentID)
		if err != nil {
			return err
		}
		state.Likes = counts.Likes
		state.Dislikes = counts.Dislikes
		return nil
	})
	g.Go(func() error {
		if userID > 0 {
			choice, err := s.voteSvc.GetVoterChoice(gCtx, userID, commentID)
			if err != nil {
				return err
			}
			state.UserVote = choice
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		response.Error(c, err)
		return
	}
	state.Total = state.Likes + state.Dislikes

	response.Success(c, state)
}

// ToggleVote 投票、改票或再投同类型撤销
func (s *VoteHandler) ToggleVote(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	var req dto.VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	state, err := s.voteSvc.ToggleVote(c.Request.Context(), userID, commentID, req.VoteType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}
