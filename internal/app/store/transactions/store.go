package transactionstore

import (
	"context"

	"github.com/entrecabinet/cabinet/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the Transactions collection: a flat ledger of
// free-text entries with list, insert, and delete-all only.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("Transactions")}
}

// ListDetails projects the detail field across every transaction document,
// no filter, no sort guarantee. Empty ledger yields an empty slice.
func (s *Store) ListDetails(ctx context.Context) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	details := make([]string, 0)
	for cur.Next(ctx) {
		var doc struct {
			Detail string `bson:"TransactionsDetail"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		details = append(details, doc.Detail)
	}
	return details, cur.Err()
}

// Insert persists a new ledger entry with a fresh ObjectID and returns the
// stored record.
func (s *Store) Insert(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	tx.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// DeleteAll removes every transaction document unconditionally.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.c.DeleteMany(ctx, bson.M{})
	return err
}
