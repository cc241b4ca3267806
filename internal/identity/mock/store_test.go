package mock

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"testapp/internal/identity"
	"testapp/pkg/autherrors"
	"testapp/pkg/sentinel"
)

func identityUpdateName(name string) identity.ProfileUpdate {
	return identity.ProfileUpdate{Name: &name}
}

type MockStoreSuite struct {
	suite.Suite
	store  *Store
	marker *Marker
}

func (s *MockStoreSuite) SetupTest() {
	s.marker = NewMarker(filepath.Join(s.T().TempDir(), "session.json"))
	s.store = New(s.marker, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMockStoreSuite(t *testing.T) {
	suite.Run(t, new(MockStoreSuite))
}

func (s *MockStoreSuite) TestSignIn() {
	ctx := context.Background()

	s.Run("seeded admin signs in with any sufficiently long password", func() {
		profile, err := s.store.SignIn(ctx, "admin@testapp.com", "anything6+")
		s.Require().NoError(err)
		s.Equal("Admin User", profile.Name)
		s.Equal("admin", string(profile.Role))
	})

	s.Run("password content is irrelevant beyond length", func() {
		first, err := s.store.SignIn(ctx, "user@testapp.com", "aaaaaa")
		s.Require().NoError(err)
		second, err := s.store.SignIn(ctx, "user@testapp.com", "completely-different")
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("email lookup is case-insensitive", func() {
		_, err := s.store.SignIn(ctx, "Admin@TestApp.com", "secret99")
		s.Require().NoError(err)
	})

	s.Run("unknown email is rejected", func() {
		_, err := s.store.SignIn(ctx, "nobody@testapp.com", "longenough")
		s.Require().Error(err)
		s.True(autherrors.HasCode(err, autherrors.CodeUnauthorized))
		s.Equal("Invalid email or password", autherrors.DisplayMessage(err))
	})

	s.Run("five character password is rejected, six succeeds", func() {
		_, err := s.store.SignIn(ctx, "admin@testapp.com", "12345")
		s.Require().Error(err)
		s.True(autherrors.HasCode(err, autherrors.CodeUnauthorized))

		_, err = s.store.SignIn(ctx, "admin@testapp.com", "123456")
		s.Require().NoError(err)
	})

	s.Run("successful sign-in persists the session marker", func() {
		_, err := s.store.SignIn(ctx, "demo@testapp.com", "demo-pass")
		s.Require().NoError(err)
		userID, ok := s.marker.Load()
		s.True(ok)
		s.Equal("3", userID)
	})
}

func (s *MockStoreSuite) TestSignUp() {
	ctx := context.Background()

	s.Run("existing email fails with conflict and leaves the catalog unchanged", func() {
		before := s.store.Len()
		_, err := s.store.SignUp(ctx, "admin@testapp.com", "abcdef", "Someone Else")
		s.Require().Error(err)
		s.True(autherrors.HasCode(err, autherrors.CodeConflict))
		s.Equal(before, s.store.Len())
	})

	s.Run("boundary lengths succeed: two rune name, six rune password", func() {
		profile, err := s.store.SignUp(ctx, "new@x.com", "abcdef", "Jo")
		s.Require().NoError(err)
		s.Equal("Jo", profile.Name)
		s.Equal("user", string(profile.Role))
	})

	s.Run("one rune name is rejected", func() {
		_, err := s.store.SignUp(ctx, "solo@x.com", "abcdef", "J")
		s.Require().Error(err)
		s.True(autherrors.HasCode(err, autherrors.CodeInvalidInput))
	})

	s.Run("five rune password is rejected before any catalog change", func() {
		before := s.store.Len()
		_, err := s.store.SignUp(ctx, "short@x.com", "abcde", "Valid Name")
		s.Require().Error(err)
		s.True(autherrors.HasCode(err, autherrors.CodeInvalidInput))
		s.Equal(before, s.store.Len())
	})

	s.Run("new accounts can sign in afterwards", func() {
		_, err := s.store.SignUp(ctx, "fresh@x.com", "hunter2x", "Fresh Account")
		s.Require().NoError(err)
		profile, err := s.store.SignIn(ctx, "fresh@x.com", "whatever-works")
		s.Require().NoError(err)
		s.Equal("Fresh Account", profile.Name)
	})
}

func (s *MockStoreSuite) TestSessionRecovery() {
	ctx := context.Background()

	s.Run("no marker means no session", func() {
		session, err := s.store.CurrentSession(ctx)
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("marker referencing a known user recovers the session", func() {
		s.Require().NoError(s.marker.Save("2"))
		session, err := s.store.CurrentSession(ctx)
		s.Require().NoError(err)
		s.Require().NotNil(session)
		s.Equal("2", session.UserID)
	})

	s.Run("marker referencing an unknown user reads as no session", func() {
		s.Require().NoError(s.marker.Save("999"))
		session, err := s.store.CurrentSession(ctx)
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("malformed marker file reads as no session", func() {
		path := filepath.Join(s.T().TempDir(), "broken.json")
		s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o600))
		store := New(NewMarker(path), slog.New(slog.NewTextHandler(io.Discard, nil)))
		session, err := store.CurrentSession(ctx)
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("sign-out clears the marker and repeats cleanly", func() {
		s.Require().NoError(s.marker.Save("1"))
		s.Require().NoError(s.store.SignOut(ctx))
		_, ok := s.marker.Load()
		s.False(ok)
		s.Require().NoError(s.store.SignOut(ctx))
	})
}

func (s *MockStoreSuite) TestUnsupportedOperations() {
	ctx := context.Background()

	_, err := s.store.UpdateProfile(ctx, "1", identityUpdateName("New Name"))
	s.Require().ErrorIs(err, sentinel.ErrUnsupported)

	_, err = s.store.ListSessions(ctx, "1")
	s.Require().ErrorIs(err, sentinel.ErrUnsupported)

	ok, err := s.store.RevokeSession(ctx, "abc")
	s.False(ok)
	s.Require().ErrorIs(err, sentinel.ErrUnsupported)

	_, err = s.store.ListAuditEvents(ctx, "1", 10)
	s.Require().ErrorIs(err, sentinel.ErrUnsupported)
}

func (s *MockStoreSuite) TestProfileLookup() {
	ctx := context.Background()

	profile, err := s.store.GetProfile(ctx, "4")
	s.Require().NoError(err)
	s.Equal("john.doe@techcorp.com", profile.Email)

	_, err = s.store.GetProfile(ctx, "404")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
