// Package postgres implements the store interfaces on PostgreSQL. All
// constraint violations are caught at the persistence boundary and mapped to
// the store error taxonomy; nothing is pre-checked, so concurrent writers
// cannot race past a check-then-act window.
package postgres
