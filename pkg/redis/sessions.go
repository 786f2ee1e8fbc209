package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"
)

const sessionPrefix = "session:"

// AdminSession is the token pair persisted for an admin login. The
// backend has a single admin credential, so at most one of these is
// live per issued session ID.
type AdminSession struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionStore keeps admin sessions in Redis, sealed with AES-GCM so a
// leaked dump does not expose bearer tokens.
type SessionStore struct {
	key []byte
}

// NewSessionStore builds a store from a 64-hex-character key.
func NewSessionStore(keyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, errors.New("session encryption key must be 64 hex characters")
	}
	return &SessionStore{key: key}, nil
}

// Save seals the session and stores it under sessionID with the given TTL.
func (s *SessionStore) Save(ctx context.Context, sessionID string, sess *AdminSession, ttl time.Duration) error {
	plaintext, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	sealed, err := s.seal(plaintext)
	if err != nil {
		return err
	}
	return Set(ctx, sessionPrefix+sessionID, sealed, ttl)
}

// Load returns the session stored under sessionID, redis.Nil when absent.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*AdminSession, error) {
	sealed, err := Get(ctx, sessionPrefix+sessionID)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.open(sealed)
	if err != nil {
		return nil, err
	}
	sess := &AdminSession{}
	if err := json.Unmarshal(plaintext, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete drops the session. Unknown session IDs are not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return Del(ctx, sessionPrefix+sessionID)
}

func (s *SessionStore) seal(plaintext []byte) (string, error) {
	gcm, err := s.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

func (s *SessionStore) open(sealed string) ([]byte, error) {
	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, err
	}
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	if len(raw) < gcm.NonceSize() {
		return nil, errors.New("sealed session too short")
	}
	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *SessionStore) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
