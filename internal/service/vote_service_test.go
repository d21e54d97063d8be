package service

import (
	"Arbor/internal/model"
	"Arbor/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteService_ToggleVote(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid vote type", func(t *testing.T) {
		f := newFixture()

		_, err := f.voteSvc.ToggleVote(ctx, 3, 1, "love")
		assert.ErrorIs(t, err, ErrVoteTypeInvalid)
	})

	t.Run("comment missing", func(t *testing.T) {
		f := newFixture()

		_, err := f.voteSvc.ToggleVote(ctx, 3, 999, model.VoteTypeLike)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("author cannot vote own comment", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{PostID: 10, AuthorID: 2, Content: "mine"})

		_, err := f.voteSvc.ToggleVote(ctx, 2, c.ID, model.VoteTypeLike)
		assert.ErrorIs(t, err, ErrVoteSelf)
	})

	t.Run("add change remove round trip", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{PostID: 10, AuthorID: 2, Content: "hot take"})

		state, err := f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeLike)
		require.NoError(t, err)
		assert.Equal(t, consts.VoteActionAdded, state.Action)
		assert.Equal(t, int64(1), state.Likes)
		assert.Equal(t, int64(0), state.Dislikes)
		assert.Equal(t, model.VoteTypeLike, state.UserVote)
		assert.Equal(t, int64(1), state.Total)

		state, err = f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeDislike)
		require.NoError(t, err)
		assert.Equal(t, consts.VoteActionChanged, state.Action)
		assert.Equal(t, int64(0), state.Likes)
		assert.Equal(t, int64(1), state.Dislikes)
		assert.Equal(t, model.VoteTypeDislike, state.UserVote)

		state, err = f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeDislike)
		require.NoError(t, err)
		assert.Equal(t, consts.VoteActionRemoved, state.Action)
		assert.Equal(t, int64(0), state.Likes)
		assert.Equal(t, int64(0), state.Dislikes)
		assert.Empty(t, state.UserVote)
		assert.Equal(t, int64(0), state.Total)
	})

	t.Run("votes from several users accumulate", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{PostID: 10, AuthorID: 2, Content: "hot take"})

		_, err := f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeLike)
		require.NoError(t, err)
		_, err = f.voteSvc.ToggleVote(ctx, 4, c.ID, model.VoteTypeLike)
		require.NoError(t, err)
		state, err := f.voteSvc.ToggleVote(ctx, 5, c.ID, model.VoteTypeDislike)
		require.NoError(t, err)

		assert.Equal(t, int64(2), state.Likes)
		assert.Equal(t, int64(1), state.Dislikes)
		assert.Equal(t, int64(3), state.Total)
		assert.Equal(t, model.VoteTypeDislike, state.UserVote)
	})

	t.Run("wiped comment still votable", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{
			PostID: 10, AuthorID: 2,
			Content: consts.DeletedContentText, IsDeleted: true,
		})

		state, err := f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeLike)
		require.NoError(t, err)
		assert.Equal(t, consts.VoteActionAdded, state.Action)
		assert.Equal(t, int64(1), state.Likes)
	})

	t.Run("concurrent duplicate insert replays stored vote", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{PostID: 10, AuthorID: 2, Content: "racy"})

		// 第一次写入撞唯一键，同时落下并发请求已插入的同类型投票
		planted := false
		f.votes.createHook = func(v *model.Vote) error {
			if planted {
				return nil
			}
			planted = true
			f.votes.addVote(v.CommentID, v.VoterID, v.Type)
			return duplicateKeyError()
		}

		state, err := f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeLike)
		require.NoError(t, err)
		assert.Equal(t, consts.VoteActionRemoved, state.Action)
		assert.Empty(t, state.UserVote)
		assert.Equal(t, int64(0), state.Likes)
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{PostID: 10, AuthorID: 2, Content: "racy"})

		f.votes.createHook = func(*model.Vote) error {
			return duplicateKeyError()
		}

		_, err := f.voteSvc.ToggleVote(ctx, 3, c.ID, model.VoteTypeLike)
		assert.ErrorIs(t, err, ErrVoteConflict)
	})
}

func TestVoteService_GetCommentVoteCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("comment missing", func(t *testing.T) {
		f := newFixture()

		_, err := f.voteSvc.GetCommentVoteCounts(ctx, 999)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("aggregates both sides", func(t *testing.T) {
		f := newFixture()
		c := f.comments.addComment(&model.Comment{PostID: 10, AuthorID: 2, Content: "counted"})
		f.votes.addVote(c.ID, 3, model.VoteTypeLike)
		f.votes.addVote(c.ID, 4, model.VoteTypeLike)
		f.votes.addVote(c.ID, 5, model.VoteTypeDislike)

		counts, err := f.voteSvc.GetCommentVoteCounts(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts.Likes)
		assert.Equal(t, int64(1), counts.Dislikes)
	})
}

func TestVoteService_GetVoterChoice(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous voter", func(t *testing.T) {
		f := newFixture()

		choice, err := f.voteSvc.GetVoterChoice(ctx, 0, 1)
		require.NoError(t, err)
		assert.Empty(t, choice)
	})

	t.Run("no vote yet", func(t *testing.T) {
		f := newFixture()

		choice, err := f.voteSvc.GetVoterChoice(ctx, 3, 1)
		require.NoError(t, err)
		assert.Empty(t, choice)
	})

	t.Run("returns stored choice", func(t *testing.T) {
		f := newFixture()
		f.votes.addVote(1, 3, model.VoteTypeDislike)

		choice, err := f.voteSvc.GetVoterChoice(ctx, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, model.VoteTypeDislike, choice)
	})
}

func TestVoteService_SyncVoteCounts(t *testing.T) {
	t.Run("propagates cache write failure", func(t *testing.T) {
		f := newFixture()
		f.votes.addVote(1, 3, model.VoteTypeLike)

		// 测试环境的 Redis 不可达，同步必然失败
		err := f.voteSvc.SyncVoteCounts(context.Background(), 1)
		assert.Error(t, err)
	})
}
