// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
)

// Stater is the state creator.
type Stater struct {
	db    kv.Store
	cache *cache.LRU
}

// NewStater create a new stater.
// A cache of cacheSize slots is shared by all states it creates, cacheSize <= 0 disables it.
func NewStater(db kv.Store, cacheSize int) (*Stater, error) {
	var lru *cache.LRU
	if cacheSize > 0 {
		var err error
		if lru, err = cache.NewLRU(cacheSize); err != nil {
			return nil, err
		}
	}
	return &Stater{db, lru}, nil
}

// NewState create a new state object on top of committed storage.
func (s *Stater) NewState() *State {
	return New(s.db, s.cache)
}

// CacheStats returns hit and miss counts of the shared cache.
func (s *Stater) CacheStats() (hit, miss int64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}
