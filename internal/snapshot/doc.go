// Package snapshot defines one polled observation of the load balancer's
// metrics and decodes it from the /metrics JSON document.
package snapshot
