package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reftrack/refadmin/internal/log"
)

// fakeStorage records mutations so tests can assert write-through ordering.
type fakeStorage struct {
	credential string
	profile    *Profile
	loadErr    error
	saveErr    error
	saves      int
	clears     int
}

func (f *fakeStorage) Load(ctx context.Context) (string, *Profile, error) {
	if f.loadErr != nil {
		return "", nil, f.loadErr
	}
	return f.credential, f.profile, nil
}

func (f *fakeStorage) Save(ctx context.Context, credential string, profile *Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.credential = credential
	f.profile = profile
	return nil
}

func (f *fakeStorage) Clear(ctx context.Context) error {
	f.clears++
	f.credential = ""
	f.profile = nil
	return nil
}

func testLogger() *log.Logger {
	return log.New(log.Config{Level: log.LevelError, Format: log.FormatJSON, Output: io.Discard})
}

func adminProfile() *Profile {
	return &Profile{
		ID:    1,
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Roles: []RoleAssignment{{Name: "admin"}},
	}
}

func TestStoreStartsLoading(t *testing.T) {
	store := NewStore(&fakeStorage{}, testLogger())

	assert.True(t, store.Loading())
	assert.True(t, store.Snapshot().Loading)
}

func TestStoreInitializeRestoresSession(t *testing.T) {
	storage := &fakeStorage{credential: "tok-123", profile: adminProfile()}
	store := NewStore(storage, testLogger())

	require.NoError(t, store.Initialize(context.Background()))

	assert.False(t, store.Loading())
	assert.True(t, store.IsAdmin())

	credential, ok := store.Credential()
	assert.True(t, ok)
	assert.Equal(t, "tok-123", credential)
}

func TestStoreInitializeEmpty(t *testing.T) {
	store := NewStore(&fakeStorage{}, testLogger())

	require.NoError(t, store.Initialize(context.Background()))

	assert.False(t, store.Loading())
	assert.False(t, store.IsAdmin())
	assert.False(t, store.Snapshot().Authenticated())
}

func TestStoreInitializeUnreadableStorageYieldsEmpty(t *testing.T) {
	storage := &fakeStorage{loadErr: errors.New("disk error")}
	store := NewStore(storage, testLogger())

	require.NoError(t, store.Initialize(context.Background()))

	assert.False(t, store.Loading())
	assert.False(t, store.Snapshot().Authenticated())
}

func TestStoreInitializeRunsOnce(t *testing.T) {
	storage := &fakeStorage{credential: "tok-123", profile: adminProfile()}
	store := NewStore(storage, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Initialize(ctx))

	// A later storage change must not leak into an already-initialized store.
	storage.credential = "tok-456"
	require.NoError(t, store.Initialize(ctx))

	credential, _ := store.Credential()
	assert.Equal(t, "tok-123", credential)
}

func TestStoreLogin(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, testLogger())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	require.NoError(t, store.Login(ctx, "tok-123", adminProfile()))

	// Durable storage holds both keys and role checks reflect the profile.
	assert.Equal(t, "tok-123", storage.credential)
	require.NotNil(t, storage.profile)
	assert.True(t, store.IsAdmin())
	assert.True(t, store.HasRole("admin"))
	assert.False(t, store.HasRole("manager"))
}

func TestStoreLoginRequiresBothFields(t *testing.T) {
	store := NewStore(&fakeStorage{}, testLogger())
	ctx := context.Background()

	assert.Error(t, store.Login(ctx, "", adminProfile()))
	assert.Error(t, store.Login(ctx, "tok-123", nil))
}

func TestStoreLoginStorageFailureLeavesMemoryUntouched(t *testing.T) {
	storage := &fakeStorage{saveErr: errors.New("disk full")}
	store := NewStore(storage, testLogger())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	require.Error(t, store.Login(ctx, "tok-123", adminProfile()))

	assert.False(t, store.Snapshot().Authenticated())
	assert.False(t, store.IsAdmin())
}

func TestStoreLogout(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, testLogger())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, "tok-123", adminProfile()))

	require.NoError(t, store.Logout(ctx))

	assert.Empty(t, storage.credential)
	assert.Nil(t, storage.profile)
	assert.False(t, store.IsAdmin())
	assert.False(t, store.Snapshot().Authenticated())
}

func TestStoreLogoutIdempotent(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage, testLogger())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, "tok-123", adminProfile()))

	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Logout(ctx))

	assert.Equal(t, 2, storage.clears)
	assert.False(t, store.Snapshot().Authenticated())
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	storage := &fakeStorage{credential: "tok-123", profile: adminProfile()}
	store := NewStore(storage, testLogger())
	require.NoError(t, store.Initialize(context.Background()))

	snapshot := store.Snapshot()
	snapshot.Profile.Roles[0].Name = "user"

	assert.True(t, store.IsAdmin())
}
