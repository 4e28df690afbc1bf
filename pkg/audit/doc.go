// Package audit records rate-limit decisions for later inspection. It is
// entirely optional: a service with no audit backend configured runs
// exactly as if this package did not exist.
package audit
