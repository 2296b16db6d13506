package orders

import (
	"context"
	"fmt"
	"time"
)

// orderNumberPrefix starts every order number; the full format is
// RP<YYYY><MM><seq> with the sequence resetting each calendar month.
const orderNumberPrefix = "RP"

// NumberPrefixFor returns the month prefix order numbers are counted under.
func NumberPrefixFor(orderDate time.Time) string {
	return fmt.Sprintf("%s%04d%02d", orderNumberPrefix, orderDate.Year(), int(orderDate.Month()))
}

// NextOrderNumber derives the next sequential order number for the month of
// orderDate. It must be called with a transaction-bound repository so the
// count reflects inserts already performed in the open transaction.
//
// Two transactions counting concurrently can still allocate the same number;
// the unique index on order_number turns that race into a conflict at commit
// instead of a silent duplicate.
func NextOrderNumber(ctx context.Context, repo Repository, orderDate time.Time) (string, error) {
	prefix := NumberPrefixFor(orderDate)
	count, err := repo.CountByNumberPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	// %04d widens past four digits once a month exceeds 9999 orders.
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
