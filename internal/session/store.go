// Package session holds the console's only piece of owned state: the
// upstream bearer token and the identity snapshot taken at login. Both
// are written and cleared as a single value, so a partially written or
// unparsable session is indistinguishable from no session at all.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"customizer-console/internal/models"
)

// Session pairs the opaque upstream token with the identity it was issued
// for. Created on OTP verification, destroyed on logout or TTL expiry.
type Session struct {
	Token    string          `json:"token"`
	Identity models.Identity `json:"identity"`
}

var ErrNoSession = errors.New("no session")

// KV is the persistence the store needs. Backed by redis in production;
// tests substitute an in-memory map.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type redisKV struct {
	rdb *redis.Client
}

func (r redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	return val, err
}

func (r redisKV) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func NewRedisKV(rdb *redis.Client) KV {
	return redisKV{rdb: rdb}
}

type Store struct {
	kv     KV
	secret []byte
	ttl    time.Duration
}

func NewStore(kv KV, secret string, ttl time.Duration) *Store {
	return &Store{kv: kv, secret: []byte(secret), ttl: ttl}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// Create persists token and identity together and returns the signed
// cookie value referencing them.
func (s *Store) Create(ctx context.Context, token string, identity models.Identity) (string, error) {
	payload, err := json.Marshal(Session{Token: token, Identity: identity})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	sid := uuid.NewString()
	if err := s.kv.Set(ctx, sessionKey(sid), string(payload), s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	cookie, err := signSID(s.secret, sid, s.ttl)
	if err != nil {
		_ = s.kv.Del(ctx, sessionKey(sid))
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return cookie, nil
}

// Current resolves a cookie value to a live session. Every failure mode,
// bad signature, missing key, expired entry, garbled JSON, collapses to
// ErrNoSession; infrastructure errors are reported as themselves so the
// guard can tell an outage from a logged-out visitor.
func (s *Store) Current(ctx context.Context, cookie string) (Session, error) {
	sid, err := parseSID(s.secret, cookie)
	if err != nil {
		return Session{}, ErrNoSession
	}
	raw, err := s.kv.Get(ctx, sessionKey(sid))
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, ErrNoSession
	}
	if sess.Token == "" || sess.Identity.Role == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Destroy removes the persisted session. A cookie that no longer resolves
// is already logged out, which is not an error.
func (s *Store) Destroy(ctx context.Context, cookie string) error {
	sid, err := parseSID(s.secret, cookie)
	if err != nil {
		return nil
	}
	return s.kv.Del(ctx, sessionKey(sid))
}
