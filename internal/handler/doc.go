// Package handler implements the liveness endpoint: GET / always answers
// 200 with a fixed plain-text body, regardless of the background worker's
// state. The decoupling is deliberate — the endpoint reports process
// liveness to the hosting platform, not bot health.
package handler
