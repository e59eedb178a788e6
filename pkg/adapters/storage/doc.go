// Package storage provides message history implementations.
//
// Implementations:
//   - redis: bounded Redis list, shared across instances
//   - memory: bounded in-memory slice, for single-node runs and tests
package storage
