// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/thor"
)

const headBucket kv.Bucket = "h"

var headKey = []byte("head")

// Head is the last committed block.
type Head struct {
	Number      uint32
	Timestamp   uint64
	ChangesHash thor.Bytes32 // digest of the storage changes of the block
}

func loadHead(db kv.Getter) (*Head, error) {
	data, err := headBucket.NewGetter(db).Get(headKey)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var h Head
	if err := rlp.DecodeBytes(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// writeHead returns a commit writer saving h.
func writeHead(h Head) func(w kv.Putter) error {
	return func(w kv.Putter) error {
		data, err := rlp.EncodeToBytes(&h)
		if err != nil {
			return err
		}
		return headBucket.NewPutter(w).Put(headKey, data)
	}
}
