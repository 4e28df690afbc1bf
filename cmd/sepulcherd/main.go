// sepulcherd is a sharded, time-windowed, in-memory rate-limit counter
// service. It exposes one HTTP endpoint, GET /rate/{collection}/{key},
// that increments and checks a sliding count against a configured limit.
//
// Usage:
//
//	# Start the server with default configuration
//	sepulcherd run
//
//	# Start with a custom configuration file
//	sepulcherd run --config /path/to/config.yaml
//
//	# Validate a collections definition without starting the server
//	sepulcherd validate --collections "logins=5:1m,signups=1:1h"
//
//	# Show version information
//	sepulcherd version
package main

func main() {
	Execute()
}
