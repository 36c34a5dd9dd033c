package memory

import (
	"time"

	"devonaut-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps the rolling AI-tutor conversation per user in
// memory. It mirrors the original server's per-user memory map, with the
// cache adding expiry so idle conversations are dropped.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Conversations idle for an hour are forgotten; purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Get(userID string) []llm.Message {
	if x, found := r.cache.Get(userID); found {
		return x.([]llm.Message)
	}
	return nil
}

// Append stores the latest user/assistant exchange at the end of the
// conversation and refreshes the expiry window.
func (r *ConversationRepository) Append(userID string, exchange ...llm.Message) {
	history := r.Get(userID)
	history = append(history, exchange...)
	r.cache.Set(userID, history, cache.DefaultExpiration)
}

func (r *ConversationRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
