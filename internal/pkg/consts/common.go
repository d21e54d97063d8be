package consts

const (
	// MaxCommentDepth 回复链的最大层级，顶级评论层级为 0
	MaxCommentDepth = 5
	// MaxCommentLength 按字符数统计的评论长度上限
	MaxCommentLength = 1000
	// DeletedContentText 软删评论的占位文本
	DeletedContentText = "该评论已删除"
)

const (
	DeleteActionContentDeleted    = "content_deleted"
	DeleteActionCompletelyDeleted = "completely_deleted"
)

const (
	VoteActionAdded   = "added"
	VoteActionChanged = "changed"
	VoteActionRemoved = "removed"
)
