package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "a:b:c", RedisKey("a", "b", "c"))
	assert.Equal(t, "lock:listing:0xabc:1", LockKey("listing", "0xabc", "1"))
}

func TestGetPrefix(t *testing.T) {
	assert.Equal(t, "lock:listing", GetPrefix("lock:listing:0xabc:1"))
	assert.Equal(t, "nonce", GetPrefix("nonce:0xabc"))
	assert.Equal(t, "", GetPrefix("single"))
}
