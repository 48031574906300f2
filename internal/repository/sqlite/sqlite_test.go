package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-portal/internal/model"
	"dental-portal/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, users repository.UserRepository, username, email string) *model.User {
	t.Helper()

	user := &model.User{Username: username, Email: email, PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestUserRoundtrip(t *testing.T) {
	users := NewUserRepository(newTestDB(t))
	created := createUser(t, users, "alice", "alice@example.com")

	byName, err := users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)

	byEmail, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
}

func TestUserNotFound(t *testing.T) {
	users := NewUserRepository(newTestDB(t))

	_, err := users.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserUniqueConstraints(t *testing.T) {
	users := NewUserRepository(newTestDB(t))
	createUser(t, users, "alice", "alice@example.com")

	err := users.Create(context.Background(), &model.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, repository.ErrUsernameExists)

	err = users.Create(context.Background(), &model.User{
		Username: "bob", Email: "alice@example.com", PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestAppointmentSlotUniqueConstraint(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	appointments := NewAppointmentRepository(db)

	alice := createUser(t, users, "alice", "alice@example.com")
	bob := createUser(t, users, "bob", "bob@example.com")

	first := &model.Appointment{UserID: alice.ID, Date: "2099-01-01", Time: "10:00", Type: "cleaning"}
	require.NoError(t, appointments.Create(context.Background(), first))

	// Same slot, different owner: the index is system-wide.
	err := appointments.Create(context.Background(), &model.Appointment{
		UserID: bob.ID, Date: "2099-01-01", Time: "10:00", Type: "checkup",
	})
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	taken, err := appointments.SlotTaken(context.Background(), "2099-01-01", "10:00")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = appointments.SlotTaken(context.Background(), "2099-01-01", "11:00")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestListUpcomingOrderingAndCutoff(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	appointments := NewAppointmentRepository(db)

	alice := createUser(t, users, "alice", "alice@example.com")
	bob := createUser(t, users, "bob", "bob@example.com")

	// Inserted out of order, plus one past row and one foreign row.
	for _, apt := range []*model.Appointment{
		{UserID: alice.ID, Date: "2099-06-01", Time: "14:00", Type: "cleaning"},
		{UserID: alice.ID, Date: "2099-05-20", Time: "16:30", Type: "checkup"},
		{UserID: alice.ID, Date: "2099-06-01", Time: "09:00", Type: "filling"},
		{UserID: alice.ID, Date: "2000-01-01", Time: "10:00", Type: "ancient"},
		{UserID: bob.ID, Date: "2099-07-01", Time: "10:00", Type: "cleaning"},
	} {
		require.NoError(t, appointments.Create(context.Background(), apt))
	}

	upcoming, err := appointments.ListUpcomingForUser(context.Background(), alice.ID, "2026-01-01")
	require.NoError(t, err)
	require.Len(t, upcoming, 3)

	assert.Equal(t, "checkup", upcoming[0].Type)
	assert.Equal(t, "filling", upcoming[1].Type)
	assert.Equal(t, "cleaning", upcoming[2].Type)
	for _, apt := range upcoming {
		assert.Equal(t, alice.ID, apt.UserID)
		assert.GreaterOrEqual(t, apt.Date, "2026-01-01")
	}
}

func TestAppointmentDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	appointments := NewAppointmentRepository(db)

	alice := createUser(t, users, "alice", "alice@example.com")
	apt := &model.Appointment{UserID: alice.ID, Date: "2099-01-01", Time: "10:00", Type: "cleaning"}
	require.NoError(t, appointments.Create(context.Background(), apt))

	require.NoError(t, appointments.Delete(context.Background(), apt.ID))

	_, err := appointments.Get(context.Background(), apt.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The slot is bookable again after cancellation.
	taken, err := appointments.SlotTaken(context.Background(), "2099-01-01", "10:00")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.ErrorIs(t, appointments.Delete(context.Background(), apt.ID), repository.ErrNotFound)
}
