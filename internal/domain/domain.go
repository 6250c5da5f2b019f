// Package domain holds cross-cutting domain constants and errors.
package domain

// KeyPrefix namespaces all keys written by this service.
const KeyPrefix = "notedex:"
