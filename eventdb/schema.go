// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	blockNumber INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	kind TEXT NOT NULL,
	account BLOB(20) NOT NULL,
	amount TEXT NOT NULL,
	reward TEXT NOT NULL,
	startPeriod INTEGER NOT NULL,
	endPeriod INTEGER NOT NULL,
	PRIMARY KEY (blockNumber, eventIndex)
);

CREATE INDEX IF NOT EXISTS accountIndex ON event(account);
CREATE INDEX IF NOT EXISTS kindIndex ON event(kind);
`
