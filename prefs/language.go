// Package prefs stores local user preferences next to the offline cache.
package prefs

import (
	"context"
	"sync"

	"github.com/goliatone/go-krishi-portal/offline"
	"go.uber.org/zap"
)

// LanguageKey is the durable key of the UI language.
const LanguageKey = "preferredLanguage"

// Language is a UI language code.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// ParseLanguage maps anything other than "hi" to English.
func ParseLanguage(s string) Language {
	if Language(s) == Hindi {
		return Hindi
	}
	return English
}

// Store reads and writes preferences through a KV.
type Store struct {
	kv     offline.KV
	logger *zap.Logger

	mu       sync.Mutex
	language Language
	loaded   bool
}

// NewStore creates a Store over kv.
func NewStore(kv offline.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Language returns the stored language, English when nothing is stored.
func (s *Store) Language(ctx context.Context) Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.language
	}

	s.language = English
	data, ok, err := s.kv.Get(ctx, LanguageKey)
	switch {
	case err != nil:
		s.logger.Warn("language preference read failed", zap.Error(err))
	case ok:
		s.language = ParseLanguage(string(data))
	}
	s.loaded = true
	return s.language
}

// SetLanguage stores lang. A failed write keeps the new value for this
// process and is only logged.
func (s *Store) SetLanguage(ctx context.Context, lang Language) {
	lang = ParseLanguage(string(lang))

	s.mu.Lock()
	s.language = lang
	s.loaded = true
	s.mu.Unlock()

	if err := s.kv.SetMany(ctx, map[string][]byte{LanguageKey: []byte(lang)}); err != nil {
		s.logger.Warn("language preference write failed", zap.Error(err))
	}
}
