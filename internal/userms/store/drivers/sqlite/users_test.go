package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/premmsharma122/user-management-system/internal/userms/domain"
	"github.com/premmsharma122/user-management-system/internal/userms/store"
	"github.com/premmsharma122/user-management-system/internal/userms/store/drivers/sqlite"
	"github.com/premmsharma122/user-management-system/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "userms.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func sampleUser(name, email, phone string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
		State:        "Maharashtra",
		City:         "Mumbai",
		Country:      "India",
	}
}

func TestUsersCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := sampleUser("Alice", "alice@example.com", "9876543210")
	require.NoError(t, st.Users().Create(ctx, u))

	byID, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.False(t, byID.CreatedAt.IsZero())
	require.False(t, byID.UpdatedAt.IsZero())

	byEmail, err := st.Users().GetByEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err, "email lookup should be case-insensitive")
	require.Equal(t, u.ID, byEmail.ID)

	byPhone, err := st.Users().GetByPhone(ctx, u.Phone)
	require.NoError(t, err)
	require.Equal(t, u.ID, byPhone.ID)
}

func TestUsersGetMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Users().GetByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersDuplicateConstraints(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := sampleUser("Alice", "alice@example.com", "9876543210")
	require.NoError(t, st.Users().Create(ctx, u))

	t.Run("duplicate email", func(t *testing.T) {
		dup := sampleUser("Bob", "Alice@Example.com", "9000000001")
		require.ErrorIs(t, st.Users().Create(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		dup := sampleUser("Bob", "bob@example.com", "9876543210")
		require.ErrorIs(t, st.Users().Create(ctx, dup), store.ErrAlreadyExists)
	})
}

func TestUsersUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := sampleUser("Alice", "alice@example.com", "9876543210")
	require.NoError(t, st.Users().Create(ctx, u))

	created, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)

	created.Name = "Alice B"
	created.City = "Pune"
	created.Role = domain.RoleAdmin
	require.NoError(t, st.Users().Update(ctx, created))

	updated, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice B", updated.Name)
	require.Equal(t, "Pune", updated.City)
	require.Equal(t, domain.RoleAdmin, updated.Role)

	t.Run("missing user", func(t *testing.T) {
		ghost := sampleUser("Ghost", "ghost@example.com", "9000000009")
		require.ErrorIs(t, st.Users().Update(ctx, ghost), store.ErrNotFound)
	})
}

func TestUsersDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := sampleUser("Alice", "alice@example.com", "9876543210")
	require.NoError(t, st.Users().Create(ctx, u))

	require.NoError(t, st.Users().Delete(ctx, u.ID))

	_, err := st.Users().GetByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Users().Delete(ctx, u.ID), store.ErrNotFound)
}

func TestUsersSearch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := sampleUser("Alice", "alice@example.com", "9000000001")
	bob := sampleUser("Bob", "bob@example.com", "9000000002")
	bob.City = "Delhi"
	bob.State = "Delhi"
	require.NoError(t, st.Users().Create(ctx, alice))
	require.NoError(t, st.Users().Create(ctx, bob))

	t.Run("empty keyword returns all", func(t *testing.T) {
		users, err := st.Users().Search(ctx, "")
		require.NoError(t, err)
		require.Len(t, users, 2)
	})

	t.Run("matches name", func(t *testing.T) {
		users, err := st.Users().Search(ctx, "Alice")
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, alice.ID, users[0].ID)
	})

	t.Run("matches city", func(t *testing.T) {
		users, err := st.Users().Search(ctx, "Delhi")
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, bob.ID, users[0].ID)
	})

	t.Run("matches email fragment", func(t *testing.T) {
		users, err := st.Users().Search(ctx, "bob@")
		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("no matches", func(t *testing.T) {
		users, err := st.Users().Search(ctx, "nowhere")
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("ordered by creation", func(t *testing.T) {
		users, err := st.Users().Search(ctx, "")
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.Less(t, users[0].ID, users[1].ID)
	})
}

func TestUsersIsEmpty(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	empty, err := st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, st.Users().Create(ctx, sampleUser("Alice", "alice@example.com", "9000000001")))

	empty, err = st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
