// internal/domain/models/user.go
package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root document of the Users collection. Income receipts are
// embedded: one Receipt per fiscal year, one Quarter per quarter name,
// maintained by AppendReceiptLine rather than by any schema constraint.
//
// The bson element names (UserID, IncomeReceipts, ...) match the documents
// written by earlier deployments of this API, so existing data decodes as-is.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              string             `bson:"UserID" json:"userId"`
	UserName            string             `bson:"UserName,omitempty" json:"userName,omitempty"`
	DepartmentName      string             `bson:"DepartmentName,omitempty" json:"departmentName,omitempty"`
	DateOfJoining       string             `bson:"DateOfJoining,omitempty" json:"dateOfJoining,omitempty"`
	PhotoFileName       string             `bson:"PhotoFileName,omitempty" json:"photoFileName,omitempty"`
	PersonalTaxId       string             `bson:"PersonalTaxId,omitempty" json:"personalTaxId,omitempty"`
	RegistrationAddress string             `bson:"RegistrationAddress,omitempty" json:"registrationAddress,omitempty"`

	// TaxPaymentDetails is an opaque record: stored and returned verbatim.
	TaxPaymentDetails bson.M `bson:"TaxPaymentDetails,omitempty" json:"taxPaymentDetails,omitempty"`

	IncomeReceipts []Receipt `bson:"IncomeReceipts" json:"incomeReceipts"`

	// Revision guards the whole-document replace in AppendReceipt against
	// concurrent writers. Not part of the public API.
	Revision int64 `bson:"Revision" json:"-"`
}

// Receipt groups one fiscal year's quarters. Owned by exactly one User.
type Receipt struct {
	Year     int       `bson:"year" json:"year"`
	Quarters []Quarter `bson:"quarters" json:"quarters"`
}

// Quarter holds the free-text receipt lines of one fiscal quarter.
// Lines are append-only; insertion order is preserved.
type Quarter struct {
	QuarterName string   `bson:"quarter" json:"quarterName"`
	Receipts    []string `bson:"receipts" json:"receipts"`
}

// Years returns the distinct fiscal years across IncomeReceipts. The append
// path keeps years unique, but duplicates in stored data are still collapsed.
func (u *User) Years() []int {
	years := make([]int, 0, len(u.IncomeReceipts))
	seen := make(map[int]bool, len(u.IncomeReceipts))
	for _, r := range u.IncomeReceipts {
		if seen[r.Year] {
			continue
		}
		seen[r.Year] = true
		years = append(years, r.Year)
	}
	return years
}

// ReceiptForYear finds the Receipt for the given year, or nil.
func (u *User) ReceiptForYear(year int) *Receipt {
	for i := range u.IncomeReceipts {
		if u.IncomeReceipts[i].Year == year {
			return &u.IncomeReceipts[i]
		}
	}
	return nil
}

// AppendReceiptLine adds line under (year, quarterName), creating the Receipt
// and Quarter entries when absent. Existing entries keep their order; the new
// line goes at the end of its quarter.
func (u *User) AppendReceiptLine(year int, quarterName, line string) {
	r := u.ReceiptForYear(year)
	if r == nil {
		u.IncomeReceipts = append(u.IncomeReceipts, Receipt{Year: year})
		r = &u.IncomeReceipts[len(u.IncomeReceipts)-1]
	}
	q := r.QuarterByName(quarterName)
	if q == nil {
		r.Quarters = append(r.Quarters, Quarter{QuarterName: quarterName})
		q = &r.Quarters[len(r.Quarters)-1]
	}
	q.Receipts = append(q.Receipts, line)
}

// QuarterNames returns the quarter names in storage order.
func (r *Receipt) QuarterNames() []string {
	names := make([]string, 0, len(r.Quarters))
	for _, q := range r.Quarters {
		names = append(names, q.QuarterName)
	}
	return names
}

// QuarterByName finds the Quarter with the given name, or nil.
func (r *Receipt) QuarterByName(name string) *Quarter {
	for i := range r.Quarters {
		if r.Quarters[i].QuarterName == name {
			return &r.Quarters[i]
		}
	}
	return nil
}

// LinesThroughQuarter concatenates, in order Q1..Qn, the receipt lines of
// every canonically named quarter up to n. Missing quarters contribute
// nothing; quarters named outside Q1..Q4 never match. No deduplication.
func (r *Receipt) LinesThroughQuarter(n int) []string {
	lines := make([]string, 0)
	for i := 1; i <= n; i++ {
		if q := r.QuarterByName(QuarterName(i)); q != nil {
			lines = append(lines, q.Receipts...)
		}
	}
	return lines
}

// QuarterName formats the canonical name of quarter i ("Q1".."Q4").
func QuarterName(i int) string {
	return fmt.Sprintf("Q%d", i)
}
