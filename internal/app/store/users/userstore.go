package userstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/entrecabinet/cabinet/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the Users collection. All nested receipt lookups
// are linear scans over the embedded arrays; the collections stay small
// (dozens of years/quarters per user at most), so no index structure is built
// beyond the unique UserID index ensured at startup.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("Users")}
}

var (
	// ErrDuplicateUserID is returned when attempting to create a user with a
	// business identifier that already exists.
	ErrDuplicateUserID = errors.New("a user with this userId already exists")

	// ErrRevisionConflict is returned when AppendReceipt keeps losing the
	// optimistic-concurrency race after its retries are exhausted.
	ErrRevisionConflict = errors.New("user document changed concurrently; append retries exhausted")
)

// ListUserIDs returns the UserID of every user document in store-natural
// order. An empty collection yields an empty slice, not an error.
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var doc struct {
			UserID string `bson:"UserID"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.UserID)
	}
	return ids, cur.Err()
}

// GetByUserID loads a user by business identifier.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"UserID": userID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user, assigning a fresh ObjectID. The caller's fields
// are stored as given; the only check is UserID uniqueness, enforced by the
// index ensured at startup and surfaced here as ErrDuplicateUserID.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Revision = 0
	if u.IncomeReceipts == nil {
		u.IncomeReceipts = []models.Receipt{}
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUserID
		}
		return models.User{}, err
	}
	return u, nil
}

// YearsForUser returns the distinct fiscal years across the user's income
// receipts. A user with no receipts yields an empty slice; an absent user
// yields mongo.ErrNoDocuments.
func (s *Store) YearsForUser(ctx context.Context, userID string) ([]int, error) {
	u, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Years(), nil
}

// QuartersByYear returns the quarter names under the user's receipt for the
// given year, in storage order. mongo.ErrNoDocuments if the user or the year
// record is absent.
func (s *Store) QuartersByYear(ctx context.Context, userID string, year int) ([]string, error) {
	r, err := s.receiptForYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return r.QuarterNames(), nil
}

// ReceiptsByYear returns the full Quarter list under the matching year.
func (s *Store) ReceiptsByYear(ctx context.Context, userID string, year int) ([]models.Quarter, error) {
	r, err := s.receiptForYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return r.Quarters, nil
}

// ReceiptsByYearAndQuarter returns the receipt lines of one specific quarter.
// mongo.ErrNoDocuments if the user, year, or quarter record is absent.
func (s *Store) ReceiptsByYearAndQuarter(ctx context.Context, userID string, year int, quarterName string) ([]string, error) {
	r, err := s.receiptForYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	q := r.QuarterByName(quarterName)
	if q == nil {
		return nil, mongo.ErrNoDocuments
	}
	return q.Receipts, nil
}

// ReceiptsForQuarterRange concatenates the receipt lines of quarters Q1..Qn
// (n in 1..4) under the matching year, quarter-ascending, without
// deduplication. Absent quarters contribute nothing; an existing year with
// none of the canonical quarters yields an empty slice.
func (s *Store) ReceiptsForQuarterRange(ctx context.Context, userID string, year, n int) ([]string, error) {
	r, err := s.receiptForYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return r.LinesThroughQuarter(n), nil
}

// TaxPaymentDetails returns the user's opaque tax payment record.
// mongo.ErrNoDocuments if the user is absent or the record is unset.
func (s *Store) TaxPaymentDetails(ctx context.Context, userID string) (bson.M, error) {
	u, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.TaxPaymentDetails) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return u.TaxPaymentDetails, nil
}

func (s *Store) receiptForYear(ctx context.Context, userID string, year int) (*models.Receipt, error) {
	u, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	r := u.ReceiptForYear(year)
	if r == nil {
		return nil, mongo.ErrNoDocuments
	}
	return r, nil
}
