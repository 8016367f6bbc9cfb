// Package orderbook implements the price-time priority matching core for a
// single instrument: two ordered book sides of FIFO price levels, an order
// index for O(log L) cancel, and a per-level aggregate index kept in step
// with every queue change.
//
// Supported order types are good-till-cancel, immediate-or-cancel,
// all-or-nothing and market. Market orders are pegged to the worst opposite
// price on admission and then rest as good-till-cancel.
//
// The book is a single-writer state machine. It performs no I/O and no
// locking; rejected requests are silent no-ops reported only through the
// injected Diagnostics sink.
package orderbook
