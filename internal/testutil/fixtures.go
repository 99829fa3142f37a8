package testutil

import (
	"context"
	"testing"

	"github.com/entrecabinet/cabinet/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user document with the given business identifier and
// receipts, bypassing the store so tests can construct arbitrary shapes.
func (f *Fixtures) CreateUser(ctx context.Context, userID string, receipts []models.Receipt) models.User {
	f.t.Helper()

	if receipts == nil {
		receipts = []models.Receipt{}
	}
	u := models.User{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		UserName:       "Test User " + userID,
		IncomeReceipts: receipts,
	}

	if _, err := f.db.Collection("Users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateUserWithTaxDetails inserts a user carrying an opaque tax payment
// record.
func (f *Fixtures) CreateUserWithTaxDetails(ctx context.Context, userID string, details bson.M) models.User {
	f.t.Helper()

	u := models.User{
		ID:                primitive.NewObjectID(),
		UserID:            userID,
		TaxPaymentDetails: details,
		IncomeReceipts:    []models.Receipt{},
	}

	if _, err := f.db.Collection("Users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateTransaction inserts a ledger entry with the given detail text.
func (f *Fixtures) CreateTransaction(ctx context.Context, detail string) models.Transaction {
	f.t.Helper()

	tx := models.Transaction{
		ID:     primitive.NewObjectID(),
		Detail: detail,
	}
	if _, err := f.db.Collection("Transactions").InsertOne(ctx, tx); err != nil {
		f.t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
