package config

import (
	"strings"
	"time"
)

// FlashStoreKind selects the backing store for flash notices.
type FlashStoreKind string

const (
	FlashStoreMemory FlashStoreKind = "memory"
	FlashStoreRedis  FlashStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (k *FlashStoreKind) UnmarshalText(text []byte) error {
	switch FlashStoreKind(strings.ToLower(strings.TrimSpace(string(text)))) {
	case FlashStoreRedis:
		*k = FlashStoreRedis
	default:
		*k = FlashStoreMemory
	}
	return nil
}

// SessionConfig controls the browser cookie holding the backend bearer token.
type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME"    envDefault:"token"`
	MaxAge     time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"24h"`
}

// Sanitize restores defaults for empty or negative values.
func (c *SessionConfig) Sanitize() {
	c.CookieName = strings.TrimSpace(c.CookieName)
	if c.CookieName == "" {
		c.CookieName = "token"
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 24 * time.Hour
	}
}

// FlashConfig controls where transient notices are kept between a redirect
// and the page that displays them.
type FlashConfig struct {
	Store FlashStoreKind `env:"FLASH_STORE" envDefault:"memory"`
	TTL   time.Duration  `env:"FLASH_TTL"   envDefault:"1m"`
}

// Sanitize clamps the TTL to a sane minimum.
func (c *FlashConfig) Sanitize() {
	if c.Store == "" {
		c.Store = FlashStoreMemory
	}
	if c.TTL < time.Second {
		c.TTL = time.Minute
	}
}
