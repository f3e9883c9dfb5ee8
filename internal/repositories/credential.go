package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/shared"
)

// CredentialRepository persists the singleton [models.Credential].
//
// The table holds at most one row. Load uses get-or-create semantics so a
// blank credential exists even before the user has authorized; callers that
// must distinguish "never authorized" use First instead.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Load returns the stored credential, creating a blank one if none exists.
func (r *CredentialRepository) Load() (*models.Credential, error) {
	cred, err := r.First()
	if err != nil {
		return nil, err
	}
	if cred != nil {
		return cred, nil
	}

	cred = models.NewCredential()
	cred.SetID(shared.GenerateID())

	if err := cred.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO spotify_credentials (id, access_token, refresh_token, expires_at, token_type, scope, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, cred.ID(), cred.AccessToken(), cred.RefreshToken(),
		cred.ExpiresAt(), cred.TokenType(), cred.Scope(), cred.CreatedAt(), cred.UpdatedAt())
	if err != nil {
		return nil, fmt.Errorf("failed to insert credential: %w", err)
	}

	return cred, nil
}

// First returns the stored credential without creating one.
//
// Returns (nil, nil) when no credential exists yet.
func (r *CredentialRepository) First() (*models.Credential, error) {
	query := `
		SELECT id, access_token, refresh_token, expires_at, token_type, scope, created_at, updated_at
		FROM spotify_credentials
		ORDER BY created_at ASC
		LIMIT 1
	`

	var (
		id           string
		accessToken  string
		refreshToken string
		expiresAt    time.Time
		tokenType    string
		scope        string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := r.db.QueryRow(query).Scan(&id, &accessToken, &refreshToken, &expiresAt, &tokenType, &scope, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	cred := models.NewCredential()
	cred.SetID(id)
	cred.SetAccessToken(accessToken)
	cred.SetRefreshToken(refreshToken)
	cred.SetExpiresAt(expiresAt)
	cred.SetTokenType(tokenType)
	cred.SetScope(scope)
	cred.SetCreatedAt(createdAt)
	cred.SetUpdatedAt(updatedAt)

	return cred, nil
}

// Save persists all token fields of the credential, bumping updated_at.
func (r *CredentialRepository) Save(cred *models.Credential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	cred.SetUpdatedAt(now)

	query := `
		UPDATE spotify_credentials
		SET access_token = ?, refresh_token = ?, expires_at = ?, token_type = ?, scope = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, cred.AccessToken(), cred.RefreshToken(), cred.ExpiresAt(),
		cred.TokenType(), cred.Scope(), now, cred.ID())
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("credential not found: %s", cred.ID())
	}

	return nil
}
