// Package messaging publishes events to a message broker without tying
// callers to a particular one.
//
// Kafka, NATS and NSQ are supported; a no-op publisher is available for
// deployments that do not ship events anywhere. Retry wraps any Publisher with
// exponential backoff.
package messaging
