// Package httpserver provides the HTTP surface of the experiment server.
//
// The BaseServer implements a server lifecycle shared with the metrics
// listener: startup in background goroutines, readiness control for load
// balancers (/livez, /readyz, /drain, /undrain), optional pprof, and graceful
// shutdown that waits for in-flight requests.
//
// The Handler maps the user and admin endpoints onto the coordinator:
//
//   - POST /user/register - register a callback endpoint, returns the user id
//   - POST /user/predict  - submit a prediction for the active session
//   - GET  /user/get      - read back predictions submitted this session
//   - POST /admin/start   - start a session (one-time even secret)
//   - POST /admin/stop    - stop the session, archiving its predictions
//   - POST /admin/answer  - message a single user
//   - GET  /admin/get     - list every session participant's predictions
//   - GET  /admin/stat    - current plus historical predictions
//
// Handlers resolve every error at this boundary: malformed requests and
// coordinator rejections both map to a 400 response, successes to 200 with a
// JSON body where one is defined. Request concurrency is bounded by a
// throttle middleware standing in for the reference's fixed worker pool.
package httpserver
