package repositories

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// InspectRow is a decoded view of one stored key, used for debugging.
type InspectRow struct {
	Key       string         `json:"key"`
	Namespace string         `json:"namespace"`
	Fields    map[string]any `json:"fields,omitempty"`
	Size      int            `json:"size"`
}

// Inspect lists up to limit entries under prefix. Values that are not
// records (sequences, index markers) are reported by size only.
func Inspect(db *badger.DB, prefix string, limit int) ([]InspectRow, error) {
	var rows []InspectRow
	err := db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid() && len(rows) < limit; it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			row := InspectRow{Key: key, Namespace: strings.SplitN(key, ":", 2)[0]}
			err := item.Value(func(val []byte) error {
				row.Size = len(val)
				if strings.HasPrefix(key, "seq:") || len(val) == 0 {
					return nil
				}
				if record, err := unmarshalRecord(val); err == nil {
					row.Fields = record.AsMap()
				}
				return nil
			})
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})
	return rows, err
}
