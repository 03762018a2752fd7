// Package service orchestrates multi-store operations for customers, bank
// accounts and bank cards. Services own the transaction boundaries; store
// sentinel errors pass through unchanged so the API layer can map them to
// status codes.
package service
