// Package models defines the core domain entities for the Poolup ledger engine.
//
// # Entities
//
//   - User: a registered account; every ledger call identifies its actor by user ID
//   - ExpenseRequest: one "someone owes money for something" event recorded in a chat
//   - DebtRecord: a single creditor↔borrower obligation derived from a request
//   - Cents: fixed-point two-decimal money, stored as integer cents
//
// # Design principles
//
//  1. Identity is always a single canonical ID string; adapting external
//     representations to it is the caller's job.
//  2. Relationships use ID strings rather than pointers, so entities never form
//     mutable reference cycles. An ExpenseRequest does not change after creation;
//     its DebtRecords are mutated only through the settlement state machine.
//  3. Money never touches floating point outside of the JSON boundary.
package models
