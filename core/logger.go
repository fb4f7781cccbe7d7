package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// ProductionLogger provides structured logging for the storefront client.
//
// Output format:
//   - JSON in Kubernetes/production environments (log aggregation friendly)
//   - Text for local development
//
// Error logs are rate limited so a flapping gateway cannot flood stdout.
// Thread-safe.
type ProductionLogger struct {
	level       string
	debug       bool
	serviceName string
	format      string
	output      io.Writer
	mu          sync.Mutex

	errorLimiter *logRateLimiter
}

// NewProductionLogger creates a logger from logging configuration.
// Configuration priority:
//  1. Explicit LoggingConfig values (highest)
//  2. Environment variables (STOREFRONT_LOG_LEVEL, STOREFRONT_DEBUG)
//  3. Auto-detection (K8s environment)
//  4. Defaults (lowest)
func NewProductionLogger(cfg LoggingConfig, serviceName string) *ProductionLogger {
	level := strings.ToUpper(cfg.Level)
	if level == "" {
		level = "INFO"
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		level = strings.ToUpper(v)
	}

	debug := os.Getenv("STOREFRONT_DEBUG") == "true" || level == "DEBUG"

	format := cfg.Format
	if format == "" || format == "auto" {
		format = "text"
		if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
			format = "json"
		}
	}

	return &ProductionLogger{
		level:        level,
		debug:        debug,
		serviceName:  serviceName,
		format:       format,
		output:       os.Stdout,
		errorLimiter: newLogRateLimiter(time.Second),
	}
}

// SetOutput redirects log output; useful in tests
func (l *ProductionLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Info logs informational messages
func (l *ProductionLogger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

// Warn logs warning messages
func (l *ProductionLogger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

// Error logs error messages with rate limiting
func (l *ProductionLogger) Error(msg string, fields map[string]interface{}) {
	if l.errorLimiter != nil && !l.errorLimiter.Allow() {
		return
	}
	l.log("ERROR", msg, fields)
}

// Debug logs debug messages (only when debug mode is enabled)
func (l *ProductionLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", msg, fields)
}

func (l *ProductionLogger) log(level, msg string, fields map[string]interface{}) {
	if !l.shouldLog(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format(time.RFC3339)
	if l.format == "json" {
		l.logJSON(timestamp, level, msg, fields)
	} else {
		l.logText(timestamp, level, msg, fields)
	}
}

func (l *ProductionLogger) shouldLog(level string) bool {
	rank := map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3}
	min, ok := rank[l.level]
	if !ok {
		min = 1
	}
	return rank[level] >= min
}

func (l *ProductionLogger) logJSON(timestamp, level, msg string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"service":   l.serviceName,
		"message":   msg,
	}
	for k, v := range fields {
		if k != "timestamp" && k != "level" && k != "service" && k != "message" {
			entry[k] = v
		}
	}
	if data, err := json.Marshal(entry); err == nil {
		fmt.Fprintln(l.output, string(data))
	}
}

func (l *ProductionLogger) logText(timestamp, level, msg string, fields map[string]interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s: %s", timestamp, level, l.serviceName, msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}

	fmt.Fprintln(l.output, b.String())
}

// logRateLimiter allows at most one event per interval
type logRateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newLogRateLimiter(interval time.Duration) *logRateLimiter {
	return &logRateLimiter{interval: interval}
}

// Allow reports whether an event may proceed, consuming the slot if so
func (r *logRateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.last) < r.interval {
		return false
	}
	r.last = now
	return true
}
