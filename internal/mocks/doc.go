// Package mocks provides hand-written test doubles for service interfaces
// used across handler and middleware tests.
package mocks
