package compoff

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryDate is the last day earned time stays usable: the end of the month
// that lies months after the month it was earned in.
func ExpiryDate(earnedOn time.Time, months int) time.Time {
	first := time.Date(earnedOn.Year(), earnedOn.Month(), 1, 0, 0, 0, 0, earnedOn.Location())
	return first.AddDate(0, months+1, -1)
}

var kindOrder = map[Kind]int{KindEarned: 0, KindUsed: 1, KindExpired: 2}

func sortEntries(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		if c := dateOnly(a.EntryDate).Compare(dateOnly(b.EntryDate)); c != 0 {
			return c
		}
		if c := cmp.Compare(kindOrder[a.Kind], kindOrder[b.Kind]); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeBalance replays the ledger up to asOf. Used days draw first on the
// oldest earned days still valid on the day of use. Whatever an earned entry
// still holds after its expiry date counts as expired.
func ComputeBalance(employeeID string, entries []Entry, asOf time.Time, expiryMonths int) (Balance, error) {
	if expiryMonths < 1 {
		return Balance{}, ErrInvalidExpiryPolicy
	}

	asOfDay := dateOnly(asOf)
	bal := Balance{
		EmployeeID:      employeeID,
		AsOf:            asOfDay,
		Earned:          decimal.Zero,
		Used:            decimal.Zero,
		Expired:         decimal.Zero,
		Available:       decimal.Zero,
		Unallocated:     decimal.Zero,
		RecordedExpired: decimal.Zero,
		Buckets:         []Bucket{},
	}

	for _, e := range sortEntries(entries) {
		day := dateOnly(e.EntryDate)
		if day.After(asOfDay) {
			break
		}

		switch e.Kind {
		case KindEarned:
			bal.Earned = bal.Earned.Add(e.Days)
			bal.Buckets = append(bal.Buckets, Bucket{
				EntryID:   e.ID,
				EarnedOn:  day,
				ExpiresOn: ExpiryDate(day, expiryMonths),
				Earned:    e.Days,
				Used:      decimal.Zero,
				Expired:   decimal.Zero,
				Remaining: e.Days,
			})
		case KindUsed:
			bal.Used = bal.Used.Add(e.Days)
			need := e.Days
			for i := range bal.Buckets {
				if !need.IsPositive() {
					break
				}
				b := &bal.Buckets[i]
				if !b.Remaining.IsPositive() || b.ExpiresOn.Before(day) {
					continue
				}
				take := decimal.Min(need, b.Remaining)
				b.Remaining = b.Remaining.Sub(take)
				b.Used = b.Used.Add(take)
				need = need.Sub(take)
			}
			bal.Unallocated = bal.Unallocated.Add(need)
		case KindExpired:
			bal.RecordedExpired = bal.RecordedExpired.Add(e.Days)
		}
	}

	for i := range bal.Buckets {
		b := &bal.Buckets[i]
		if b.ExpiresOn.Before(asOfDay) && b.Remaining.IsPositive() {
			b.Expired = b.Remaining
			b.Remaining = decimal.Zero
		}
		bal.Expired = bal.Expired.Add(b.Expired)
		bal.Available = bal.Available.Add(b.Remaining)
	}

	return bal, nil
}

// Months groups the buckets by earning month, oldest first.
func (b Balance) Months() []MonthBucket {
	var months []MonthBucket
	index := make(map[string]int)
	for _, bucket := range b.Buckets {
		key := bucket.EarnedOn.Format("2006-01")
		i, ok := index[key]
		if !ok {
			index[key] = len(months)
			months = append(months, MonthBucket{
				Month:      key,
				Earned:     decimal.Zero,
				Used:       decimal.Zero,
				Expired:    decimal.Zero,
				Available:  decimal.Zero,
				ExpiryDate: bucket.ExpiresOn,
			})
			i = len(months) - 1
		}
		m := &months[i]
		m.Earned = m.Earned.Add(bucket.Earned)
		m.Used = m.Used.Add(bucket.Used)
		m.Expired = m.Expired.Add(bucket.Expired)
		m.Available = m.Available.Add(bucket.Remaining)
	}
	return months
}

// ExpiredBetween sums the days that lapsed inside [start, end].
func (b Balance) ExpiredBetween(start, end time.Time) decimal.Decimal {
	from, to := dateOnly(start), dateOnly(end)
	total := decimal.Zero
	for _, bucket := range b.Buckets {
		lapse := bucket.LapsesOn()
		if bucket.Expired.IsPositive() && !lapse.Before(from) && !lapse.After(to) {
			total = total.Add(bucket.Expired)
		}
	}
	return total
}

// Activity sums earned and used entries dated inside [start, end].
func Activity(entries []Entry, start, end time.Time) (earned, used decimal.Decimal) {
	from, to := dateOnly(start), dateOnly(end)
	earned, used = decimal.Zero, decimal.Zero
	for _, e := range entries {
		day := dateOnly(e.EntryDate)
		if day.Before(from) || day.After(to) {
			continue
		}
		switch e.Kind {
		case KindEarned:
			earned = earned.Add(e.Days)
		case KindUsed:
			used = used.Add(e.Days)
		}
	}
	return earned, used
}
