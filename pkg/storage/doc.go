// Package storage defines the store interfaces and sentinel errors shared
// by the storage adapters (memory, postgres).
//
// Tenant scoping is explicit in the interface: operations on company-owned
// entities take the owning company's id as a parameter and conjoin it with
// the entity id in the lookup predicate. A miss of either kind is one
// ErrNotFound; the adapters never reveal whether an entity exists under a
// different tenant.
package storage
