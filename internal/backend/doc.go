// Package backend talks to the Log Hoihoi backend over HTTP.
//
// A Resolver supplies the backend origin synchronously; the Client builds
// every request from it, so the origin can be swapped in tests or changed by
// flags without rebuilding the client.
//
// # Endpoints
//
//	GET  /api/ssh-key/setup   ensure the per-install SSH key exists
//	GET  /api/pclist          list registered devices
//	POST /api/regist          register a device
//
// Every request carries an X-Request-ID header so backend logs can be
// matched to client diagnostics.
package backend
