package consts

const (
	CommentVoteLikeKey    = "comment:vote:like:"
	CommentVoteDislikeKey = "comment:vote:dislike:"
	CommentVoteDirtyKey   = "comment:vote:dirty"
	PostCommentCountKey   = "post:comment:count:"
)
