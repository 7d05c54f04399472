// Package resilience provides fault tolerance patterns for the catalog's storage access.
//
// The circuitbreaker subpackage wraps sony/gobreaker. The storage gateway uses
// it to fail fast when the datastore cannot hand out live connections, instead
// of letting every repository call wait for its own connection timeout.
//
// Failed statements are reported once and never replayed; there is no retry policy.
//
// Usage Example:
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(db)
//	conn, err := dcb.Conn(ctx)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
package resilience
