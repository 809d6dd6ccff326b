package keys

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxNonce is used for prefixing login nonce redis key
	PfxNonce = "nonce"
	// PfxLock is used for prefixing ledger write locks
	PfxLock = "lock"
	// PfxListing is used for prefixing cached listing queries
	PfxListing = "listing"
	// PfxHttpCache is used for prefixing cached http responses
	PfxHttpCache = "httpCache"
	// PfxEns is used for prefixing ens lookups
	PfxEns = "ens"
	// PfxMetadata is used for prefixing resolved token metadata
	PfxMetadata = "metadata"
)

// MD5 hashes the data with md5
func MD5(data string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// LockKey builds the redis key guarding one ledger entry, e.g. lock:listing:<collection>:<tokenId>
func LockKey(components ...string) string {
	return RedisKey(append([]string{PfxLock}, components...)...)
}

// GetPrefix extracts the first two components of a key, used as metric tag
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
