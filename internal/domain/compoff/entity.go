package compoff

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindEarned  Kind = "earned"
	KindUsed    Kind = "used"
	KindExpired Kind = "expired"
)

func (k Kind) Valid() bool {
	switch k {
	case KindEarned, KindUsed, KindExpired:
		return true
	}
	return false
}

func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown comp-off entry kind %q", s)
	}
	return kind, nil
}

// Entry is one append-only ledger line. Days is always positive; Kind gives
// the direction.
type Entry struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	EntryDate     time.Time
	Kind          Kind
	Days          decimal.Decimal
	Reason        string
	SourceEntryID *string
	CreatedBy     *string
	CreatedAt     time.Time
}

// Bucket tracks one earned entry through its life.
type Bucket struct {
	EntryID   string
	EarnedOn  time.Time
	ExpiresOn time.Time
	Earned    decimal.Decimal
	Used      decimal.Decimal
	Expired   decimal.Decimal
	Remaining decimal.Decimal
}

// LapsesOn is the first day the bucket can no longer be used.
func (b Bucket) LapsesOn() time.Time {
	return b.ExpiresOn.AddDate(0, 0, 1)
}

// MonthBucket groups buckets by the month they were earned in.
type MonthBucket struct {
	Month      string
	Earned     decimal.Decimal
	Used       decimal.Decimal
	Expired    decimal.Decimal
	Available  decimal.Decimal
	ExpiryDate time.Time
}

type Balance struct {
	EmployeeID string
	AsOf       time.Time
	Earned     decimal.Decimal
	Used       decimal.Decimal
	Expired    decimal.Decimal
	Available  decimal.Decimal
	// Unallocated is used time that found no unexpired earned days.
	Unallocated decimal.Decimal
	// RecordedExpired is the sum of expired entries already written to the ledger.
	RecordedExpired decimal.Decimal
	Buckets         []Bucket
}
