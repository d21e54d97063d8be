package dto

// VoteReq 投票请求
type VoteReq struct {
	VoteType string `json:"voteType" binding:"required,oneof=like dislike"`
}

// VoteStateDTO 投票状态数据，Action 仅在切换投票后返回
type VoteStateDTO struct {
	Action   string `json:"action,omitempty"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
	UserVote string `json:"userVote"` // like、dislike 或空串
	Total    int64  `json:"total"`
}
