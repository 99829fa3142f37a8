// internal/domain/models/transaction.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Transaction is a free-text ledger entry. It is independent of User: the
// ledger supports list, insert, and delete-all, and nothing else.
type Transaction struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Detail keeps the TransactionsDetail element name used by earlier
	// deployments of this collection.
	Detail string `bson:"TransactionsDetail" json:"detail"`
}
