package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/crypto"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements driven.CredentialStore using PostgreSQL.
// OAuth tokens are encrypted before they reach the database; the rest of
// the row stays plaintext so expiry filtering can happen in SQL.
type CredentialStore struct {
	db        *sql.DB
	encryptor *crypto.SecretEncryptor
}

// NewCredentialStore creates a new PostgreSQL-backed credential store.
func NewCredentialStore(db *sql.DB, encryptor *crypto.SecretEncryptor) *CredentialStore {
	return &CredentialStore{
		db:        db,
		encryptor: encryptor,
	}
}

// credentialSecrets is the encrypted portion of a credentials row.
type credentialSecrets struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SavePendingAuth stores a pending authorization keyed by nonce.
func (s *CredentialStore) SavePendingAuth(ctx context.Context, pending *domain.PendingAuth) error {
	query := `
		INSERT INTO pending_auths (nonce, user_id, org_id, provider, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		pending.Nonce,
		pending.UserID,
		pending.OrgID,
		pending.Provider,
		pending.CreatedAt,
		pending.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save pending auth: %w", err)
	}

	return nil
}

// ConsumePendingAuth atomically retrieves and deletes a pending authorization.
// Uses DELETE ... RETURNING for atomic single-use semantics; a nonce that is
// missing, already consumed, or expired returns domain.ErrNotFound.
func (s *CredentialStore) ConsumePendingAuth(ctx context.Context, nonce string) (*domain.PendingAuth, error) {
	query := `
		DELETE FROM pending_auths
		WHERE nonce = $1 AND expires_at > NOW()
		RETURNING nonce, user_id, org_id, provider, created_at, expires_at
	`

	var pending domain.PendingAuth
	err := s.db.QueryRowContext(ctx, query, nonce).Scan(
		&pending.Nonce,
		&pending.UserID,
		&pending.OrgID,
		&pending.Provider,
		&pending.CreatedAt,
		&pending.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume pending auth: %w", err)
	}

	return &pending, nil
}

// SaveCredentials stores credentials for a session, replacing any existing row.
func (s *CredentialStore) SaveCredentials(ctx context.Context, session domain.Session, creds *domain.Credentials, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	secretBlob, err := s.encryptor.Encrypt(credentialSecrets{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("encrypt credentials: %w", err)
	}

	query := `
		INSERT INTO credentials (session_key, provider, secret_blob, obtained_at, token_expires_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_key) DO UPDATE SET
			provider = EXCLUDED.provider,
			secret_blob = EXCLUDED.secret_blob,
			obtained_at = EXCLUDED.obtained_at,
			token_expires_at = EXCLUDED.token_expires_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err = s.db.ExecContext(ctx, query,
		session.Key(),
		creds.Provider,
		secretBlob,
		creds.ObtainedAt,
		NullTime(creds.ExpiresAt),
		time.Now().Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	return nil
}

// GetCredentials retrieves credentials for a session with decrypted tokens.
func (s *CredentialStore) GetCredentials(ctx context.Context, session domain.Session) (*domain.Credentials, error) {
	query := `
		SELECT provider, secret_blob, obtained_at, token_expires_at
		FROM credentials
		WHERE session_key = $1 AND expires_at > NOW()
	`

	var creds domain.Credentials
	var secretBlob []byte
	var tokenExpiresAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, session.Key()).Scan(
		&creds.Provider,
		&secretBlob,
		&creds.ObtainedAt,
		&tokenExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}

	var secrets credentialSecrets
	if err := s.encryptor.Decrypt(secretBlob, &secrets); err != nil {
		return nil, fmt.Errorf("decrypt credentials: %w", err)
	}

	creds.AccessToken = secrets.AccessToken
	creds.RefreshToken = secrets.RefreshToken
	creds.ExpiresAt = TimePtr(tokenExpiresAt)

	return &creds, nil
}

// DeleteCredentials removes credentials for a session. Deleting a session
// that has no credentials is not an error.
func (s *CredentialStore) DeleteCredentials(ctx context.Context, session domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM credentials WHERE session_key = $1", session.Key())
	if err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}

	return nil
}

// Cleanup removes expired pending authorizations and credentials.
func (s *CredentialStore) Cleanup(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_auths WHERE expires_at < NOW()`); err != nil {
		return fmt.Errorf("cleanup pending auths: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE expires_at < NOW()`); err != nil {
		return fmt.Errorf("cleanup credentials: %w", err)
	}

	return nil
}
