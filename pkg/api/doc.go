// Package api defines the domain types, error taxonomy, and identifier
// scheme shared by every layer of the talentgate recruitment API.
//
// The types here are transport-agnostic: the HTTP adapter serializes them,
// the storage adapters persist them, and the service layer enforces the
// tenant-scoping rules over them. Nothing in this package touches a store
// or a network.
package api
