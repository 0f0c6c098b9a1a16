package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Business logic logging methods

// LogHoldPlaced logs a successful seat hold
func (l *Logger) LogHoldPlaced(ctx context.Context, screeningID, clientID string, seats int, expiresAt time.Time) {
	l.Logger.InfoContext(ctx,
		"Seat Hold Placed",
		slog.String("screening_id", screeningID),
		slog.String("client_id", clientID),
		slog.Int("seats", seats),
		slog.Time("expires_at", expiresAt),
	)
}

// LogHoldReleased logs a hold release
func (l *Logger) LogHoldReleased(ctx context.Context, screeningID, clientID string, released int) {
	l.Logger.InfoContext(ctx,
		"Seat Hold Released",
		slog.String("screening_id", screeningID),
		slog.String("client_id", clientID),
		slog.Int("released", released),
	)
}

// LogReservationCommitted logs a committed reservation
func (l *Logger) LogReservationCommitted(ctx context.Context, reservationID, screeningID, clientID string, seats int) {
	l.Logger.InfoContext(ctx,
		"Reservation Committed",
		slog.String("reservation_id", reservationID),
		slog.String("screening_id", screeningID),
		slog.String("client_id", clientID),
		slog.Int("seats", seats),
	)
}

// LogReservationCancelled logs a cancelled reservation
func (l *Logger) LogReservationCancelled(ctx context.Context, reservationID, screeningID string, freedSeats int) {
	l.Logger.InfoContext(ctx,
		"Reservation Cancelled",
		slog.String("reservation_id", reservationID),
		slog.String("screening_id", screeningID),
		slog.Int("freed_seats", freedSeats),
	)
}

// LogNotifyFailure logs a failed seat-update delivery. Delivery failures are
// logged and dropped; they never surface to the mutating caller.
func (l *Logger) LogNotifyFailure(ctx context.Context, screeningID string, err error) {
	l.Logger.WarnContext(ctx,
		"Seat Update Delivery Failed",
		slog.String("screening_id", screeningID),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
