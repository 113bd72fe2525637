// Package models defines the core domain models for ReposeLink.
//
// # Models
//
//   - User: a funeral-home operator account (the owner of all other records)
//   - Client: a funeral-service engagement for one deceased person
//   - Payment: a payment made against a Client's balance
//   - Notification: a dashboard feed entry produced by store mutations
//
// # Design Principles
//
// 1. **Flat records**: models are plain structs with string IDs; relationships
// use ID fields instead of pointers to avoid circular references.
//
// 2. **Owner scoping**: every Client, Payment and Notification carries the
// OwnerID of the User who created it. Scoping is stamped on write; read paths
// are single-tenant and do not filter by owner.
//
// 3. **Unix timestamps**: instants (CreatedAt, UpdatedAt, LastLogin) are Unix
// seconds. Calendar dates (date of birth, service date) are ISO date strings
// because they carry no time zone or instant semantics.
package models
