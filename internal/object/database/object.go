package database

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"quadix/internal/database"
	"quadix/internal/object/model"
)

const bucket = "object:all"

type FilterFn func(object model.Object) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) Store(_ context.Context, object model.Object) error {
	bytes, err := json.Marshal(object)
	if err != nil {
		return err
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(object.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}

func (db *DB) AppendMany(_ context.Context, objects []model.Object) error {
	if err := db.sDB.DB.Batch(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		for _, object := range objects {
			bytes, err := json.Marshal(object)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(object.ID.String()), bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("batch transaction error: %v", err)
	}

	return nil
}

func (db *DB) FindAll(filter FilterFn) ([]model.Object, error) {
	var objects []model.Object
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var object model.Object
			if err := json.Unmarshal(v, &object); err != nil {
				return fmt.Errorf("unmarshal object %s: %w", k, err)
			}
			if filter == nil || filter(object) {
				objects = append(objects, object)
			}
			return nil
		})
	})

	return objects, err
}

func (db *DB) CountAll() (int, error) {
	var length int
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		length = b.Stats().KeyN
		return nil
	})

	return length, err
}

func (db *DB) DeleteMany(_ context.Context, objects []model.Object) error {
	if err := db.sDB.DB.Batch(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		for _, object := range objects {
			if err := b.Delete([]byte(object.ID.String())); err != nil {
				return fmt.Errorf("delete from bucket error: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("batch transaction error: %v", err)
	}

	return nil
}

// Reset drops the whole bucket.
func (db *DB) Reset(_ context.Context) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucket)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(bucket))
	}); err != nil {
		return fmt.Errorf("update transaction error: %v", err)
	}

	return nil
}
