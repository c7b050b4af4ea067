// Package selection remembers which warehouse an operator is working in.
// The choice arrives once as a ?warehouse= query parameter and is kept in a
// server-side session afterwards.
//
// Session keys should be 32 or 64 bytes for HMAC authentication and 16, 24,
// or 32 bytes for AES encryption. Generate production keys with:
//
//	openssl rand -base64 32
package selection

import (
	"context"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "selection:"
	// sessionMaxAge outlives a shift; every request slides the expiry.
	sessionMaxAge = 30 * 24 * time.Hour
)

// ErrUnsupportedValue is returned by Save for session values that are not
// string to string. A selection session holds identifiers only.
var ErrUnsupportedValue = errors.New("selection: session values must be strings")

// RedisStore is a sessions.Store keeping session values in Redis. Only the
// signed and encrypted session ID travels in the cookie.
//
// Values are stored as a JSON object under "selection:<id>". Reading a session
// refreshes its TTL, so an operator who works daily never has to reselect.
type RedisStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore returns a RedisStore. secureCookie restricts the cookie to
// HTTPS and should be true in production.
func NewSessionStore(client *redis.Client, authKey, encryptionKey []byte, secureCookie bool) *RedisStore {
	return &RedisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(sessionMaxAge / time.Second),
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the request's cached session, loading it on first use.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered, or
// expired session yields a fresh one and no error: the operator is simply asked
// to pick a warehouse again.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	values, err := s.load(r.Context(), id, s.ttl(session))
	if err != nil {
		return session, nil
	}
	session.ID = id
	session.Values = values
	session.IsNew = false
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			_ = s.client.Del(r.Context(), sessionKeyPrefix+session.ID).Err()
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	raw, err := encodeValues(session.Values)
	if err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = newSessionID()
	}
	if err := s.client.Set(r.Context(), sessionKeyPrefix+session.ID, raw, s.ttl(session)).Err(); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) ttl(session *sessions.Session) time.Duration {
	return time.Duration(session.Options.MaxAge) * time.Second
}

// load reads the values and slides the expiry in one round trip.
func (s *RedisStore) load(ctx context.Context, id string, ttl time.Duration) (map[any]any, error) {
	raw, err := s.client.GetEx(ctx, sessionKeyPrefix+id, ttl).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return decodeValues(raw)
}

func newSessionID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}

func encodeValues(values map[any]any) ([]byte, error) {
	flat := make(map[string]string, len(values))
	for k, v := range values {
		ks, ok := k.(string)
		vs, ok2 := v.(string)
		if !ok || !ok2 {
			return nil, fmt.Errorf("%w: %v=%v", ErrUnsupportedValue, k, v)
		}
		flat[ks] = vs
	}
	return json.Marshal(flat)
}

func decodeValues(raw []byte) (map[any]any, error) {
	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	values := make(map[any]any, len(flat))
	for k, v := range flat {
		values[k] = v
	}
	return values, nil
}
