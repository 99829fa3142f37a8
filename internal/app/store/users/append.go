package userstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// appendRetries bounds the optimistic-concurrency retry loop in
// AppendReceipt. Contention on a single user document is expected to be
// rare, so a small bound is enough.
const appendRetries = 3

// AppendReceipt appends one receipt line under (year, quarterName) for the
// given user, creating the year and quarter entries when absent. The user
// document is materialized, mutated in memory, and written back with a
// whole-document replace.
//
// The replace filter includes the document's Revision, so a concurrent
// writer that got in first makes the replace match nothing; the loop then
// reloads and reapplies the append instead of silently dropping the other
// writer's line. Returns false (without error) when the user does not
// exist: adding a receipt never creates a user.
func (s *Store) AppendReceipt(ctx context.Context, userID string, year int, quarterName, line string) (bool, error) {
	for attempt := 0; attempt < appendRetries; attempt++ {
		u, err := s.GetByUserID(ctx, userID)
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		loaded := u.Revision
		u.AppendReceiptLine(year, quarterName, line)
		u.Revision = loaded + 1

		// $in with nil also matches documents written before the Revision
		// field existed.
		filter := bson.M{
			"UserID":   userID,
			"Revision": bson.M{"$in": bson.A{loaded, nil}},
		}
		res, err := s.c.ReplaceOne(ctx, filter, u)
		if err != nil {
			return false, err
		}
		if res.ModifiedCount > 0 {
			return true, nil
		}
		// Revision moved under us; reload and try again.
	}
	return false, ErrRevisionConflict
}
