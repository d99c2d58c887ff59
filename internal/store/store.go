// Package store archives finished games. The rules core is the producer
// only; nothing read back from here ever feeds into live game state.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gameKeyPrefix = "game:"

// ErrNotFound is returned when no archived game exists under the given ID.
var ErrNotFound = errors.New("game not found")

// GameRecord is the archived form of one game: the move sequence, the final
// position and the result code ("1-0", "0-1", "1/2-1/2", "*").
type GameRecord struct {
	ID       string    `json:"id"`
	White    string    `json:"white"`
	Black    string    `json:"black"`
	Moves    []string  `json:"moves"`
	FinalFEN string    `json:"finalFen"`
	Result   string    `json:"result"`
	Opening  string    `json:"opening,omitempty"`
	ECO      string    `json:"eco,omitempty"`
	EndedAt  time.Time `json:"endedAt"`
}

// Archive wraps BadgerDB for persistent game storage.
type Archive struct {
	db *badger.DB
}

// Open opens or creates the archive under dir.
func Open(dir string) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Save writes or overwrites the record under its game ID.
func (a *Archive) Save(record GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+record.ID), data)
	})
}

// Get loads one archived game.
func (a *Archive) Get(id string) (GameRecord, error) {
	var record GameRecord
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	return record, err
}

// ListIDs returns the IDs of every archived game.
func (a *Archive) ListIDs() ([]string, error) {
	var ids []string
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}
