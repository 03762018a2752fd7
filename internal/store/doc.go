// Package store defines the persistence interfaces for customers, bank
// accounts and bank cards, the sentinel error taxonomy shared by all
// implementations, and helpers for running multi-step operations inside a
// single database transaction.
package store
