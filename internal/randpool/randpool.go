// File: internal/randpool/randpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide pool of *rand.Rand so every randomized draw (noise,
// suppression) borrows a generator that is exclusively its own for the
// call, instead of contending on the global math/rand lock. Mirrors
// pool.DefaultManager's sync.Once singleton in the buffer pool.
package randpool

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

var (
	once        sync.Once
	defaultPool *sync.Pool
	seq         atomic.Int64
)

func defaultRandPool() *sync.Pool {
	once.Do(func() {
		defaultPool = &sync.Pool{
			New: func() any {
				return rand.New(rand.NewSource(time.Now().UnixNano() + seq.Add(1)))
			},
		}
	})
	return defaultPool
}

// Get borrows a *rand.Rand for the duration of one call. Not safe to
// retain across goroutines.
func Get() *rand.Rand {
	return defaultRandPool().Get().(*rand.Rand)
}

// Put returns a *rand.Rand borrowed via Get.
func Put(r *rand.Rand) {
	defaultRandPool().Put(r)
}
