// Package models defines the core domain models for Bookbill.
//
// # Models
//
//   - Book: a catalog entry with price and on-hand stock
//   - LineItem: one book's quantity/rate entry inside a bill in progress
//   - CommittedBill: the immutable snapshot produced when a bill is finalized
//   - StockDecrement: a single stock-reduction request derived from a committed bill
//   - Clerk: a registered till operator (login account)
//
// # Design Principles
//
// 1. **Snapshots over references**: a LineItem copies the book's name and price
// at selection time, so later catalog edits never reach an open bill.
// 2. **Avoid circular references**: relationships use ID strings, not pointers.
// 3. **Immutability after commit**: a CommittedBill is never mutated; the
// renderer and the archive only ever read it.
package models
