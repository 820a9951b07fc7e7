// Package fetcher retrieves metrics snapshots from the load balancer's
// /metrics endpoint over HTTP.
package fetcher
