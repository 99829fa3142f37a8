package userstore_test

import (
	"reflect"
	"testing"

	userstore "github.com/entrecabinet/cabinet/internal/app/store/users"
	"github.com/entrecabinet/cabinet/internal/testutil"
)

func TestAppendReceipt_UserAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Appending never creates a user as a side effect.
	ok, err := store.AppendReceipt(ctx, "ghost", 2024, "Q1", "line")
	if err != nil {
		t.Fatalf("AppendReceipt failed: %v", err)
	}
	if ok {
		t.Error("expected false for absent user")
	}
	if _, err := store.GetByUserID(ctx, "ghost"); err == nil {
		t.Error("user must not be created by AppendReceipt")
	}
}

func TestAppendReceipt_CreatesYearAndQuarter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "alice", nil)

	ok, err := store.AppendReceipt(ctx, "alice", 2024, "Q1", "rent-receipt-1")
	if err != nil {
		t.Fatalf("AppendReceipt failed: %v", err)
	}
	if !ok {
		t.Fatal("expected true for existing user")
	}

	lines, err := store.ReceiptsByYearAndQuarter(ctx, "alice", 2024, "Q1")
	if err != nil {
		t.Fatalf("ReceiptsByYearAndQuarter failed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"rent-receipt-1"}) {
		t.Errorf("lines: got %v, want [rent-receipt-1]", lines)
	}

	// Q2 absent: the two-quarter range still only carries Q1's line.
	rangeLines, err := store.ReceiptsForQuarterRange(ctx, "alice", 2024, 2)
	if err != nil {
		t.Fatalf("ReceiptsForQuarterRange failed: %v", err)
	}
	if !reflect.DeepEqual(rangeLines, []string{"rent-receipt-1"}) {
		t.Errorf("range lines: got %v, want [rent-receipt-1]", rangeLines)
	}
}

func TestAppendReceipt_SameQuarterTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "twice", nil)

	for _, line := range []string{"first", "second"} {
		ok, err := store.AppendReceipt(ctx, "twice", 2024, "Q1", line)
		if err != nil || !ok {
			t.Fatalf("AppendReceipt(%q): ok=%v err=%v", line, ok, err)
		}
	}

	u, err := store.GetByUserID(ctx, "twice")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}

	// Idempotent structure, non-idempotent content: one Receipt, one
	// Quarter, both lines in call order.
	if len(u.IncomeReceipts) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(u.IncomeReceipts))
	}
	if len(u.IncomeReceipts[0].Quarters) != 1 {
		t.Fatalf("expected 1 quarter, got %d", len(u.IncomeReceipts[0].Quarters))
	}
	got := u.IncomeReceipts[0].Quarters[0].Receipts
	if !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Errorf("lines: got %v, want [first second]", got)
	}
}

func TestAppendReceipt_BumpsRevision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "rev", nil)

	before, err := store.GetByUserID(ctx, "rev")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}

	if ok, err := store.AppendReceipt(ctx, "rev", 2024, "Q4", "line"); err != nil || !ok {
		t.Fatalf("AppendReceipt: ok=%v err=%v", ok, err)
	}

	after, err := store.GetByUserID(ctx, "rev")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if after.Revision != before.Revision+1 {
		t.Errorf("revision: got %d, want %d", after.Revision, before.Revision+1)
	}
}

func TestAppendReceipt_ConcurrentAppendsBothSurvive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "racer", nil)

	// The revision filter turns the historical lost-update race into a
	// retried append, so both writers' lines must land.
	done := make(chan error, 2)
	for _, line := range []string{"left", "right"} {
		go func(line string) {
			ok, err := store.AppendReceipt(ctx, "racer", 2024, "Q1", line)
			if err == nil && !ok {
				err = userstore.ErrRevisionConflict
			}
			done <- err
		}(line)
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent AppendReceipt failed: %v", err)
		}
	}

	lines, err := store.ReceiptsByYearAndQuarter(ctx, "racer", 2024, "Q1")
	if err != nil {
		t.Fatalf("ReceiptsByYearAndQuarter failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("expected both lines to survive, got %v", lines)
	}
}
