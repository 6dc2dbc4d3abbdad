// Package store provides abstractions for data persistence.
//
// The interfaces here are the contract between the business logic and the
// relational store. Concrete implementations live under
// internal/platform/postgres.
package store
