package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"

	"github.com/chirpdeck/chirpdeck/internal/auth/twitter"
	"github.com/chirpdeck/chirpdeck/internal/config"
)

const (
	defaultSessionTable = "twitter_sessions"

	// SessionCookie carries the opaque session identifier for the Postgres
	// backend. The tokens themselves never leave the server.
	SessionCookie = "chirpdeck_session"
)

// PostgresStore keeps credentials server-side in PostgreSQL, keyed by an
// opaque session-id cookie. It satisfies the same contract as the cookie
// store: httpOnly-equivalent inaccessibility plus bounded lifetimes.
type PostgresStore struct {
	db    *sql.DB
	cfg   *config.Config
	table string
}

// NewPostgresStore establishes a connection to PostgreSQL and ensures the
// session table exists.
func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.SessionStore.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("postgres store: DSN is required")
	}
	table := cfg.SessionStore.Table
	if table == "" {
		table = defaultSessionTable
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres store: open database connection: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres store: ping database: %w", err)
	}

	s := &PostgresStore{db: db, cfg: cfg, table: table}
	if err = s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database connection.
func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ensureSchema creates the session table when missing.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			access_token TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL DEFAULT '',
			pending_state TEXT NOT NULL DEFAULT '',
			pending_verifier TEXT NOT NULL DEFAULT '',
			pending_expires_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, s.table))
	if err != nil {
		return fmt.Errorf("postgres store: create session table: %w", err)
	}
	return nil
}

// Save overwrites the stored credential pair for this session.
func (s *PostgresStore) Save(c *gin.Context, pair twitter.CredentialPair) error {
	id := s.sessionID(c, true)
	_, err := s.db.ExecContext(c.Request.Context(), fmt.Sprintf(`
		INSERT INTO %s (id, access_token, refresh_token, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = CASE WHEN EXCLUDED.refresh_token <> '' THEN EXCLUDED.refresh_token ELSE %s.refresh_token END,
			updated_at = NOW()
	`, s.table, s.table), id, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		return fmt.Errorf("postgres store: save credentials: %w", err)
	}
	return nil
}

// Load retrieves the stored credential pair; absent sessions yield a zero pair.
func (s *PostgresStore) Load(c *gin.Context) (twitter.CredentialPair, error) {
	id := s.sessionID(c, false)
	if id == "" {
		return twitter.CredentialPair{}, nil
	}
	var pair twitter.CredentialPair
	row := s.db.QueryRowContext(c.Request.Context(),
		fmt.Sprintf("SELECT access_token, refresh_token FROM %s WHERE id = $1", s.table), id)
	if err := row.Scan(&pair.AccessToken, &pair.RefreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return twitter.CredentialPair{}, nil
		}
		return twitter.CredentialPair{}, fmt.Errorf("postgres store: load credentials: %w", err)
	}
	return pair, nil
}

// Clear removes the session row and the session cookie. Idempotent.
func (s *PostgresStore) Clear(c *gin.Context) {
	id := s.sessionID(c, false)
	if id != "" {
		if _, err := s.db.ExecContext(c.Request.Context(),
			fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table), id); err != nil {
			log.Errorf("postgres store: clear session: %v", err)
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.cfg.Cookies.Secure, true)
}

// SavePending stores the verifier/state pair with its bounded lifetime.
func (s *PostgresStore) SavePending(c *gin.Context, pending twitter.PendingAuth) error {
	id := s.sessionID(c, true)
	expires := time.Now().Add(time.Duration(s.cfg.Cookies.PendingMaxAge) * time.Second)
	_, err := s.db.ExecContext(c.Request.Context(), fmt.Sprintf(`
		INSERT INTO %s (id, pending_state, pending_verifier, pending_expires_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			pending_state = EXCLUDED.pending_state,
			pending_verifier = EXCLUDED.pending_verifier,
			pending_expires_at = EXCLUDED.pending_expires_at,
			updated_at = NOW()
	`, s.table), id, pending.State, pending.CodeVerifier, expires)
	if err != nil {
		return fmt.Errorf("postgres store: save pending state: %w", err)
	}
	return nil
}

// TakePending retrieves and deletes the pending auth state, honoring its expiry.
func (s *PostgresStore) TakePending(c *gin.Context) (twitter.PendingAuth, bool) {
	id := s.sessionID(c, false)
	if id == "" {
		return twitter.PendingAuth{}, false
	}
	var pending twitter.PendingAuth
	var expires sql.NullTime
	row := s.db.QueryRowContext(c.Request.Context(),
		fmt.Sprintf("SELECT pending_state, pending_verifier, pending_expires_at FROM %s WHERE id = $1", s.table), id)
	if err := row.Scan(&pending.State, &pending.CodeVerifier, &expires); err != nil {
		return twitter.PendingAuth{}, false
	}
	if _, err := s.db.ExecContext(c.Request.Context(), fmt.Sprintf(
		"UPDATE %s SET pending_state = '', pending_verifier = '', pending_expires_at = NULL WHERE id = $1", s.table), id); err != nil {
		log.Errorf("postgres store: clear pending state: %v", err)
	}
	if pending.State == "" || pending.CodeVerifier == "" {
		return twitter.PendingAuth{}, false
	}
	if expires.Valid && time.Now().After(expires.Time) {
		return twitter.PendingAuth{}, false
	}
	return pending, true
}

// sessionID returns the opaque session identifier for this request, minting
// and setting a new one when create is true and none exists yet.
func (s *PostgresStore) sessionID(c *gin.Context, create bool) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	if !create {
		return ""
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, s.cfg.Cookies.RefreshMaxAge, "/", "", s.cfg.Cookies.Secure, true)
	// Make the id visible to later store calls within the same request.
	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	return id
}
