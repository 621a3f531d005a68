package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_app/internal/db"
	"todo_app/internal/domain"
	"todo_app/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGormStore_Users(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	user := &domain.User{Username: "alice@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	byID, err := store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Username)

	byName, err := store.FindUserByUsername(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = store.FindUserByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, db.ErrNotFound)

	_, err = store.FindUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestGormStore_CreateUser_Duplicate(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &domain.User{Username: "alice", Password: "a"}))
	err := store.CreateUser(ctx, &domain.User{Username: "alice", Password: "b"})
	assert.Error(t, err)
}

func TestGormStore_ListTasks_OrderedAndScoped(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	alice := &domain.User{Username: "alice", Password: "x"}
	bob := &domain.User{Username: "bob", Password: "x"}
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	for _, task := range []*domain.Task{
		{Title: "later", Deadline: date(2031, time.May, 1), Priority: domain.PriorityLow, Status: domain.StatusPending, OwnerID: alice.ID},
		{Title: "sooner", Deadline: date(2030, time.January, 9), Priority: domain.PriorityHigh, Status: domain.StatusPending, OwnerID: alice.ID},
		{Title: "bob's", Deadline: date(2029, time.January, 1), Priority: domain.PriorityMedium, Status: domain.StatusPending, OwnerID: bob.ID},
		{Title: "middle", Deadline: date(2030, time.June, 15), Priority: domain.PriorityMedium, Status: domain.StatusCompleted, OwnerID: alice.ID},
	} {
		require.NoError(t, store.CreateTask(ctx, task))
	}

	tasks, err := store.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "sooner", tasks[0].Title)
	assert.Equal(t, "middle", tasks[1].Title)
	assert.Equal(t, "later", tasks[2].Title)
	assert.Equal(t, "2030-01-09", tasks[0].DeadlineString())
	for _, task := range tasks {
		assert.Equal(t, alice.ID, task.OwnerID)
	}

	none, err := store.ListTasks(ctx, alice.ID+bob.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormStore_TaskMutations(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	owner := &domain.User{Username: "alice", Password: "x"}
	require.NoError(t, store.CreateUser(ctx, owner))

	task := &domain.Task{Title: "Ship report", Deadline: date(2030, time.March, 1), Priority: domain.PriorityHigh, Status: domain.StatusPending, OwnerID: owner.ID}
	require.NoError(t, store.CreateTask(ctx, task))

	require.NoError(t, store.UpdateTaskStatus(ctx, task.ID, domain.StatusCompleted))
	found, err := store.FindTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, found.Status)

	require.NoError(t, store.DeleteTask(ctx, task.ID))
	_, err = store.FindTask(ctx, task.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	assert.ErrorIs(t, store.DeleteTask(ctx, task.ID), db.ErrNotFound)
	assert.ErrorIs(t, store.UpdateTaskStatus(ctx, task.ID, domain.StatusPending), db.ErrNotFound)
}

func TestGormStore_Ping(t *testing.T) {
	store := testutil.NewStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
