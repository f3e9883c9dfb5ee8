package repositories

import (
	"testing"
	"time"

	tu "github.com/desertthunder/playback/internal/testing"
)

func TestCredentialRepository(t *testing.T) {
	t.Run("First", func(t *testing.T) {
		t.Run("returns nil when no credential exists", func(t *testing.T) {
			repo := NewCredentialRepository(tu.NewTestDB(t))

			cred, err := repo.First()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cred != nil {
				t.Error("expected nil credential before first Load")
			}
		})
	})

	t.Run("Load", func(t *testing.T) {
		t.Run("creates a blank credential on first access", func(t *testing.T) {
			repo := NewCredentialRepository(tu.NewTestDB(t))

			cred, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if cred.ID() == "" {
				t.Error("expected generated id")
			}
			if cred.Authenticated() {
				t.Error("expected blank access token")
			}
			if cred.TokenType() != "Bearer" {
				t.Errorf("expected Bearer token type, got %s", cred.TokenType())
			}
			if !cred.Expired(time.Now()) {
				t.Error("expected blank credential to start expired")
			}
		})

		t.Run("is idempotent", func(t *testing.T) {
			repo := NewCredentialRepository(tu.NewTestDB(t))

			first, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			second, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if first.ID() != second.ID() {
				t.Errorf("expected same singleton row, got %s and %s", first.ID(), second.ID())
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("persists token fields", func(t *testing.T) {
			repo := NewCredentialRepository(tu.NewTestDB(t))

			cred, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
			cred.SetAccessToken("access")
			cred.SetRefreshToken("refresh")
			cred.SetExpiresAt(expiry)
			cred.SetScope("user-top-read")

			if err := repo.Save(cred); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			got, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got.AccessToken() != "access" {
				t.Errorf("expected access token persisted, got %s", got.AccessToken())
			}
			if got.RefreshToken() != "refresh" {
				t.Errorf("expected refresh token persisted, got %s", got.RefreshToken())
			}
			if !got.ExpiresAt().UTC().Equal(expiry) {
				t.Errorf("expected expiry %v, got %v", expiry, got.ExpiresAt().UTC())
			}
			if got.Scope() != "user-top-read" {
				t.Errorf("expected scope persisted, got %s", got.Scope())
			}
		})

		t.Run("bumps updated_at", func(t *testing.T) {
			repo := NewCredentialRepository(tu.NewTestDB(t))

			cred, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			before := cred.UpdatedAt()
			time.Sleep(5 * time.Millisecond)

			if err := repo.Save(cred); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !cred.UpdatedAt().After(before) {
				t.Error("expected updated_at to advance on save")
			}
		})

		t.Run("fails for an unknown id", func(t *testing.T) {
			repo := NewCredentialRepository(tu.NewTestDB(t))

			cred, err := repo.Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			cred.SetID("missing")
			if err := repo.Save(cred); err == nil {
				t.Error("expected error saving credential with unknown id")
			}
		})
	})
}
