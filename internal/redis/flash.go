package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Flash struct {
	Client *redis.Client
}

func NewFlash(client *redis.Client) *Flash {
	return &Flash{Client: client}
}

const noteTTL = 30 * time.Minute

// AddNote stores a user-visible note for the session. An existing note is
// overwritten; the shopper only ever sees the latest one.
func (f *Flash) AddNote(sessionID, text string) error {
	key := "flash_note:" + sessionID
	return f.Client.Set(context.Background(), key, text, noteTTL).Err()
}

// PopNote returns and clears the session's note. No note is not an error.
func (f *Flash) PopNote(sessionID string) (string, error) {
	ctx := context.Background()
	key := "flash_note:" + sessionID

	text, err := f.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	_, err = f.Client.Del(ctx, key).Result()
	return text, err
}
