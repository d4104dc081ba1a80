// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/thor"
)

// Stage abstracts changes on the storage.
type Stage struct {
	db      kv.Store
	cache   *cache.LRU
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

func (s *Stage) sortedKeys() []storageKey {
	keys := make([]storageKey, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b storageKey) int {
		return bytes.Compare(a.dbKey(), b.dbKey())
	})
	return keys
}

// Hash computes digest of all changes, ordered by slot.
func (s *Stage) Hash() thor.Bytes32 {
	keys := s.sortedKeys()
	return thor.Blake2bFn(func(w io.Writer) {
		for _, k := range keys {
			w.Write(k.dbKey())
			w.Write(thor.Blake2b(s.changes[k]).Bytes())
		}
	})
}

// Commit writes all changes into db in one batch, along with whatever the extra
// writers put into it. It returns the digest of changes.
func (s *Stage) Commit(extras ...func(w kv.Putter) error) (thor.Bytes32, error) {
	batch := s.db.NewBatch()
	storage := StorageBucket.NewPutter(batch)
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = storage.Delete(k.dbKey())
		} else {
			err = storage.Put(k.dbKey(), v)
		}
		if err != nil {
			return thor.Bytes32{}, &Error{err}
		}
	}
	for _, extra := range extras {
		if err := extra(batch); err != nil {
			return thor.Bytes32{}, err
		}
	}
	if err := batch.Write(); err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	metricStorageCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "write", "target": "db"})

	if s.cache != nil {
		for k, v := range s.changes {
			s.cache.Add(k, v)
		}
	}
	return s.Hash(), nil
}
