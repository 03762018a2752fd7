// Package mocks provides hand-written test doubles for the store interfaces.
// Each mock exposes Fn fields to override individual methods; unset methods
// return the mock's default values. Call counts are tracked where service
// tests need to assert cascade ordering.
package mocks
