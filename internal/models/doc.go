// Package models defines the core domain models for the dues collection system.
//
// # Models
//
//   - Member: one row of the membership roster, with per-period payment status
//   - PaymentEvent: a normalized record of one received PIX transfer
//   - Charge: a PIX charge created by the billing cycle
//   - RunReport: the aggregate outcome of one job run (charges, reminders, payments)
//
// # Design Principles
//
// 1. Members are identified by display name; matching normalizes to lower-case,
// trimmed keys and assumes names are unique after normalization.
// 2. Amounts travel as decimal strings, exactly as the payment network sends
// them; arithmetic and validation happen at the edges with shopspring/decimal.
// 3. Nothing here is persisted by the core itself: the roster lives in the
// ledger store, events are consumed once, charges live only for the run.
package models
