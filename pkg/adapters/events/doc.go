// Package events provides event bus implementations.
//
// Implementations:
//   - redis: Redis Streams with consumer groups, for multi-instance feeds
//   - memory: In-process, publish-ordered, for single-node runs and tests
package events
