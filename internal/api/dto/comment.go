package dto

// CommentCreateReq 创建评论请求
type CommentCreateReq struct {
	Content  string  `json:"content" binding:"required,max=1000"`
	ParentID *uint64 `json:"parentId"` // 空表示顶级评论
}

// CommentDTO 评论树节点
type CommentDTO struct {
	ID        uint64  `json:"id"`
	PostID    uint64  `json:"postId"`
	AuthorID  uint64  `json:"authorId"`
	Content   string  `json:"content"`
	ParentID  *uint64 `json:"parentId"`
	Depth     int     `json:"depth"`
	IsDeleted bool    `json:"isDeleted"`
	Likes     int64   `json:"likes"`
	Dislikes  int64   `json:"dislikes"`
	UserVote  string  `json:"userVote"`
	CreatedAt string  `json:"createdAt"`

	Replies []*CommentDTO `json:"replies"`
}

// CommentPageDTO 评论树分页数据，Total 统计帖子全部评论，分页只作用于顶级评论
type CommentPageDTO struct {
	Comments   []*CommentDTO `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	HasMore    bool          `json:"hasMore"`
}

// CommentCreatedDTO 创建评论响应
type CommentCreatedDTO struct {
	ID        uint64  `json:"id"`
	Content   string  `json:"content"`
	Depth     int     `json:"depth"`
	ParentID  *uint64 `json:"parentId"`
	CreatedAt string  `json:"createdAt"`
}

// CommentDeleteDTO 删除评论响应
type CommentDeleteDTO struct {
	Action string `json:"action"` // content_deleted 或 completely_deleted
}
