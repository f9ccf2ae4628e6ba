package checkers

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	ch := NewRedisChecker(client)
	assert.Equal(t, "redis", ch.Name())
	assert.NoError(t, ch.Check(context.Background()))

	mr.Close()
	assert.Error(t, ch.Check(context.Background()))
}
