// Package snapshot prints a book snapshot as a price ladder: asks from
// worst to best, the spread, then bids from best to worst.
package snapshot
