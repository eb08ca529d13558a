// Package service implements the core operations of the talentgate API:
// the registration/login flow and the tenant-scoped resource operations
// over users, positions, and applicants.
//
// Every method that acts on behalf of a caller takes the verified
// auth.Principal as an explicit parameter. The tenant-scoping policy
// lives here: created entities take their company from the principal,
// never from input; lookups conjoin the requested id with the principal's
// company and report misses of either kind as one not-found error; and
// privileged operations check the principal's role before any store
// access.
package service
