// Package domain defines the core domain models for FerroDB.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling. This package contains the structured error type
// shared by the storage engine, persistence layer, and command dispatcher.
package domain
