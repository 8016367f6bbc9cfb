// Package service is the single write entry point into a book. It
// serializes every operation behind a mutex, pools orders, feeds the
// book's diagnostics to the logger and keeps the metrics current.
//
// Command streams in the text protocol are applied with Replay.
package service
