// Package memory provides the typed object pool the service uses to
// allocate orders and to take back the ones the book has released.
package memory
