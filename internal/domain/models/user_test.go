package models_test

import (
	"reflect"
	"testing"

	"github.com/entrecabinet/cabinet/internal/domain/models"
)

func TestYears_Empty(t *testing.T) {
	u := models.User{UserID: "u1"}

	years := u.Years()
	if years == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(years) != 0 {
		t.Errorf("expected no years, got %v", years)
	}
}

func TestYears_DeduplicatesStoredDuplicates(t *testing.T) {
	// Two receipts sharing a year can only exist in hand-written or legacy
	// data; Years must still collapse them.
	u := models.User{
		IncomeReceipts: []models.Receipt{
			{Year: 2023},
			{Year: 2024},
			{Year: 2023},
		},
	}

	years := u.Years()
	want := []int{2023, 2024}
	if !reflect.DeepEqual(years, want) {
		t.Errorf("Years: got %v, want %v", years, want)
	}
}

func TestAppendReceiptLine_CreatesNestedStructure(t *testing.T) {
	u := models.User{UserID: "u1"}

	u.AppendReceiptLine(2024, "Q1", "rent-receipt-1")

	if len(u.IncomeReceipts) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(u.IncomeReceipts))
	}
	r := u.IncomeReceipts[0]
	if r.Year != 2024 {
		t.Errorf("year: got %d, want 2024", r.Year)
	}
	if len(r.Quarters) != 1 || r.Quarters[0].QuarterName != "Q1" {
		t.Fatalf("expected one Q1 quarter, got %+v", r.Quarters)
	}
	if !reflect.DeepEqual(r.Quarters[0].Receipts, []string{"rent-receipt-1"}) {
		t.Errorf("receipts: got %v", r.Quarters[0].Receipts)
	}
}

func TestAppendReceiptLine_SameQuarterTwice(t *testing.T) {
	u := models.User{UserID: "u1"}

	u.AppendReceiptLine(2024, "Q1", "first")
	u.AppendReceiptLine(2024, "Q1", "second")

	if len(u.IncomeReceipts) != 1 {
		t.Fatalf("expected exactly one receipt for 2024, got %d", len(u.IncomeReceipts))
	}
	r := u.IncomeReceipts[0]
	if len(r.Quarters) != 1 {
		t.Fatalf("expected exactly one Q1 quarter, got %d", len(r.Quarters))
	}
	got := r.Quarters[0].Receipts
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines: got %v, want %v (call order must be preserved)", got, want)
	}
}

func TestAppendReceiptLine_PreservesExistingOrder(t *testing.T) {
	u := models.User{UserID: "u1"}

	u.AppendReceiptLine(2023, "Q2", "a")
	u.AppendReceiptLine(2024, "Q1", "b")
	u.AppendReceiptLine(2023, "Q1", "c")

	if got := u.Years(); !reflect.DeepEqual(got, []int{2023, 2024}) {
		t.Errorf("years: got %v (insertion order expected)", got)
	}
	r := u.ReceiptForYear(2023)
	if r == nil {
		t.Fatal("missing receipt for 2023")
	}
	if got := r.QuarterNames(); !reflect.DeepEqual(got, []string{"Q2", "Q1"}) {
		t.Errorf("quarter order: got %v, want [Q2 Q1]", got)
	}
}

func TestLinesThroughQuarter_ConcatenatesInCanonicalOrder(t *testing.T) {
	r := models.Receipt{
		Year: 2024,
		Quarters: []models.Quarter{
			{QuarterName: "Q3", Receipts: []string{"c1", "c2"}},
			{QuarterName: "Q1", Receipts: []string{"a1"}},
			{QuarterName: "Q2", Receipts: []string{"b1"}},
		},
	}

	got := r.LinesThroughQuarter(3)
	want := []string{"a1", "b1", "c1", "c2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("range lines: got %v, want %v", got, want)
	}
}

func TestLinesThroughQuarter_MatchesPerQuarterConcatenation(t *testing.T) {
	r := models.Receipt{
		Year: 2024,
		Quarters: []models.Quarter{
			{QuarterName: "Q1", Receipts: []string{"a"}},
			{QuarterName: "Q3", Receipts: []string{"c"}},
			{QuarterName: "bogus", Receipts: []string{"never"}},
		},
	}

	var want []string
	for i := 1; i <= 3; i++ {
		if q := r.QuarterByName(models.QuarterName(i)); q != nil {
			want = append(want, q.Receipts...)
		}
	}

	got := r.LinesThroughQuarter(3)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, line := range got {
		if line == "never" {
			t.Error("non-canonical quarter name leaked into range result")
		}
	}
}

func TestLinesThroughQuarter_MissingQuartersContributeNothing(t *testing.T) {
	r := models.Receipt{
		Year:     2024,
		Quarters: []models.Quarter{{QuarterName: "Q1", Receipts: []string{"only"}}},
	}

	got := r.LinesThroughQuarter(4)
	if !reflect.DeepEqual(got, []string{"only"}) {
		t.Errorf("got %v, want [only]", got)
	}
}

func TestQuarterName(t *testing.T) {
	for i, want := range map[int]string{1: "Q1", 2: "Q2", 3: "Q3", 4: "Q4"} {
		if got := models.QuarterName(i); got != want {
			t.Errorf("QuarterName(%d): got %q, want %q", i, got, want)
		}
	}
}
