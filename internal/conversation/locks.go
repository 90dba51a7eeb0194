package conversation

import "sync"

// userLocks serializes session mutations per user without a global lock.
// Locks are distributed across shards by an FNV-1a hash of the user ID, so
// different users proceed concurrently while one user's events stay ordered.
const numUserShards = 64

type userLocks struct {
	shards [numUserShards]sync.Mutex
}

func (l *userLocks) lock(userID string) func() {
	shard := &l.shards[hashUserID(userID)%numUserShards]
	shard.Lock()
	return shard.Unlock
}

func hashUserID(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
