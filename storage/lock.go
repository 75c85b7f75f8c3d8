package storage

import (
	"hash/maphash"
	"sync"
)

const lockStripes = 256

var (
	keyLocks [lockStripes]sync.Mutex
	lockSeed = maphash.MakeSeed()
)

// Lock serializes read-modify-write cycles on key within this process and
// returns the matching unlock. Scoped stores are resolved to their full key,
// so two sessions never wait on each other unless their keys share a stripe.
// It does not coordinate separate processes sharing one backend.
func Lock(s Storage, key string) (unlock func()) {
	mu := &keyLocks[maphash.String(lockSeed, FullKey(s, key))%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// FullKey returns the key s actually writes for key, with every Scoped
// prefix applied.
func FullKey(s Storage, key string) string {
	for {
		sc, ok := s.(*scoped)
		if !ok {
			return key
		}
		key = sc.prefix + key
		s = sc.inner
	}
}
