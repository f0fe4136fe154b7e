package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

func TestCommentService_Create_Signed(t *testing.T) {
	users := newFakeUsersRepo()
	author, err := users.Create(context.Background(), &models.User{Username: "dave", Email: "dave@example.com"})
	require.NoError(t, err)

	comments := newFakeCommentsRepo()
	svc := NewCommentService(nil, &fakeRM{users: users, comments: comments})

	comment, err := svc.Create(context.Background(), 7, &author.ID, "looks good")
	require.NoError(t, err)

	assert.Equal(t, "dave", comment.UserName)
	assert.Equal(t, "dave@example.com", comment.UserEmail)
	assert.Equal(t, []string{"comment_added"}, comments.activities)
}

// Anonymous comments carry no author and skip the enrichment lookup.
func TestCommentService_Create_Anonymous(t *testing.T) {
	comments := newFakeCommentsRepo()
	svc := NewCommentService(nil, &fakeRM{users: newFakeUsersRepo(), comments: comments})

	comment, err := svc.Create(context.Background(), 7, nil, "drive-by note")
	require.NoError(t, err)

	assert.Nil(t, comment.UserID)
	assert.Empty(t, comment.UserName)
	assert.Equal(t, []string{"comment_added"}, comments.activities)
}

func TestCommentService_Create_Validation(t *testing.T) {
	svc := NewCommentService(nil, &fakeRM{comments: newFakeCommentsRepo()})

	_, err := svc.Create(context.Background(), 7, nil, "")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(context.Background(), 0, nil, "text")
	assert.ErrorIs(t, err, common.ErrValidation)
}

// The comment insert and the activity insert are separate statements: a
// failing activity write surfaces the error but the comment stays behind.
func TestCommentService_Create_ActivityFailureKeepsComment(t *testing.T) {
	comments := newFakeCommentsRepo()
	comments.logErr = errors.New("activity_log insert failed")
	svc := NewCommentService(nil, &fakeRM{comments: comments})

	_, err := svc.Create(context.Background(), 7, nil, "orphaned")
	require.Error(t, err)

	got, err := comments.GetByCard(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCommentService_Delete_ReturnsCardID(t *testing.T) {
	comments := newFakeCommentsRepo()
	svc := NewCommentService(nil, &fakeRM{comments: comments})

	created, err := comments.Create(context.Background(), &models.Comment{CardID: 9, Content: "x"})
	require.NoError(t, err)

	cardID, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cardID)

	_, err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
