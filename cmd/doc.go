// Package cmd provides the experiment server binaries.
//
// # Commands
//
// server: the coordination server. Users register callback endpoints, the
// admin starts and stops experiment sessions with one-time even secrets,
// predictions are collected per session and archived on stop.
//
//	go run ./cmd/server --addr=:8080
//	go run ./cmd/server --config=server.yaml
//
// user-cli: interactive user client. Runs a /notify listener on its own port
// and accepts the commands "register", "predict <n>" and
// "see-my-predictions" on stdin.
//
//	go run ./cmd/user-cli --server=http://localhost:8080 --port=9001
//
// admin-cli: interactive admin client. Accepts "start", "stop",
// "answer <id> <text>", "get" and "statistic" on stdin, generating a fresh
// even secret for every call.
//
//	go run ./cmd/admin-cli --server=http://localhost:8080
//
// # Configuration
//
// The server supports YAML configuration files via --config; command-line
// flags override config file values, and EXPERIMENT_* environment variables
// override both.
//
// Example config:
//
//	http_addr: ":8080"
//	metrics_addr: ":9090"
//	enable_pprof: false
//	log_json: true
//	max_concurrent: 4
//	notify_timeout: 5s
package cmd
