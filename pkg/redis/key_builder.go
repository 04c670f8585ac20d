package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Party key builders
func (kb *KeyBuilder) KeyPartiesAll() string {
	return kb.BuildKey(KeyPartiesAll)
}

func (kb *KeyBuilder) KeyPartyByID(partyID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyPartyByID, partyID))
}

// Comment key builders
func (kb *KeyBuilder) KeyUserLikes(userID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyUserLikes, userID))
}

func (kb *KeyBuilder) KeyLikeToggleLock(userID, commentID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyLikeToggleLock, userID, commentID))
}

// Game catalog key builders
func (kb *KeyBuilder) KeyGameSearch(queryHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyGameSearch, queryHash))
}

// Generic key builders for custom patterns
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	key := fmt.Sprintf(pattern, args...)
	return kb.BuildKey(key)
}
