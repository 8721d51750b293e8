package repositories

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Records are stored as protobuf Struct values.
// Timestamps are kept as RFC3339Nano strings since Struct numbers are float64.

func marshalRecord(fields map[string]any) ([]byte, error) {
	record, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}
	bytes, err := proto.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return bytes, nil
}

func unmarshalRecord(bytes []byte) (*structpb.Struct, error) {
	var record structpb.Struct
	if err := proto.Unmarshal(bytes, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &record, nil
}

// getRecord loads the record stored under key. found is false if the key is absent.
func getRecord(txn *badger.Txn, key string) (record *structpb.Struct, found bool, err error) {
	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	err = item.Value(func(val []byte) error {
		record, err = unmarshalRecord(val)
		return err
	})
	return record, err == nil, err
}

func setRecord(txn *badger.Txn, key string, fields map[string]any) error {
	bytes, err := marshalRecord(fields)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), bytes)
}

func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	return err == nil, err
}

// scanKeys returns every key starting with prefix, values are not fetched.
func scanKeys(txn *badger.Txn, prefix string) []string {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = []byte(prefix)
	it := txn.NewIterator(options)
	defer it.Close()

	var keys []string
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys
}

func uint32Field(record *structpb.Struct, name string) uint32 {
	return uint32(record.GetFields()[name].GetNumberValue())
}

func stringField(record *structpb.Struct, name string) string {
	return record.GetFields()[name].GetStringValue()
}

func boolField(record *structpb.Struct, name string) bool {
	return record.GetFields()[name].GetBoolValue()
}

func stringsField(record *structpb.Struct, name string) []string {
	return lo.Map(record.GetFields()[name].GetListValue().GetValues(), func(v *structpb.Value, _ int) string {
		return v.GetStringValue()
	})
}

func timeField(record *structpb.Struct, name string) (time.Time, error) {
	raw := stringField(record, name)
	if raw == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return at, nil
}

func formatTime(at time.Time) string {
	return at.UTC().Format(time.RFC3339Nano)
}

// nextID draws from a badger sequence, skipping 0 so that ids are never the zero value.
func nextID(seq *badger.Sequence) (uint32, error) {
	for {
		id, err := seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		if id != 0 {
			return uint32(id), nil
		}
	}
}
