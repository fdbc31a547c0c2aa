package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-api/internal/domains/users/domain"
	"github.com/Apurer/storefront-api/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := *user
	f.users[user.Email] = &copy
	return &copy, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, email string) error {
	if _, ok := f.users[email]; !ok {
		return ports.ErrNotFound
	}
	delete(f.users, email)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var list []*domain.User
	for _, u := range f.users {
		copy := *u
		list = append(list, &copy)
	}
	return list, nil
}

type fakeSessionStore struct {
	sessions map[string]*domain.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionStore) Save(_ context.Context, session *domain.Session) error {
	copy := *session
	f.sessions[session.Token] = &copy
	return nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, token string) (*domain.Session, error) {
	if s, ok := f.sessions[token]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, ports.ErrSessionNotFound
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) PurgeExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func registerUser(t *testing.T, svc *Service, email, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "Alice", password)
	require.NoError(t, err)
	saved, err := svc.Register(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	registerUser(t, svc, "Alice@Example.com", "secret")

	session, err := svc.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "alice@example.com", session.Email)
	require.NotNil(t, sessions.sessions[session.Token])
}

func TestLogin_CanonicalizesEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeSessionStore())
	registerUser(t, svc, "alice@example.com", "secret")

	session, err := svc.Login(context.Background(), "  ALICE@EXAMPLE.COM  ", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", session.Email)
}

func TestLogin_WrongPasswordAndUnknownAccountLookAlike(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeSessionStore())
	registerUser(t, svc, "alice@example.com", "secret")

	_, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "nope")
	_, unknownErr := svc.Login(context.Background(), "bob@example.com", "secret")

	require.ErrorIs(t, wrongPassErr, ErrAuthentication)
	require.ErrorIs(t, unknownErr, ErrAuthentication)
	require.Equal(t, wrongPassErr.Error(), unknownErr.Error())
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeSessionStore())
	registerUser(t, svc, "alice@example.com", "secret")

	session, err := svc.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	resolved, err := svc.Authenticate(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, session.Email, resolved.Email)
}

func TestAuthenticate_ExpiredSessionDropped(t *testing.T) {
	sessions := newFakeSessionStore()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(newFakeUserRepo(), sessions,
		WithSessionTTL(time.Hour),
		WithClock(func() time.Time { return current }),
	)
	registerUser(t, svc, "alice@example.com", "secret")

	session, err := svc.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = svc.Authenticate(context.Background(), session.Token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	require.Empty(t, sessions.sessions)
}

func TestLogout_UnknownTokenIsNoError(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeSessionStore())
	require.NoError(t, svc.Logout(context.Background(), "missing-token"))
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeSessionStore())

	_, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), &domain.User{Email: "a@b.com", Password: "abc"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
