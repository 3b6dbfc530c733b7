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
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
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
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Business logic logging methods

// LogOfferCreated logs when a buyer offer is created with its fund hold
func (l *Logger) LogOfferCreated(ctx context.Context, offerID, buyerID, eventID string, heldAmount float64) {
	l.Logger.InfoContext(ctx,
		"Offer Created",
		slog.String("offer_id", offerID),
		slog.String("buyer_id", buyerID),
		slog.String("event_id", eventID),
		slog.Float64("held_amount", heldAmount),
	)
}

// LogOfferMatched logs when an offer is settled against a fulfillment
func (l *Logger) LogOfferMatched(ctx context.Context, offerID, sellerID, transactionID string) {
	l.Logger.InfoContext(ctx,
		"Offer Matched",
		slog.String("offer_id", offerID),
		slog.String("seller_id", sellerID),
		slog.String("transaction_id", transactionID),
	)
}

// LogOfferCancelled logs when an offer is cancelled and its hold released
func (l *Logger) LogOfferCancelled(ctx context.Context, offerID, buyerID string) {
	l.Logger.InfoContext(ctx,
		"Offer Cancelled",
		slog.String("offer_id", offerID),
		slog.String("buyer_id", buyerID),
	)
}

// LogCaptureFailed logs a committed settlement whose payment capture failed.
// These always require operational follow-up, so they log at error level.
func (l *Logger) LogCaptureFailed(ctx context.Context, offerID, authorizationID string, err error) {
	l.Logger.ErrorContext(ctx,
		"Payment Capture Failed After Settlement",
		slog.String("offer_id", offerID),
		slog.String("authorization_id", authorizationID),
		slog.String("error", err.Error()),
	)
}

// LogExpirySweep logs the outcome of one expiry sweep pass
func (l *Logger) LogExpirySweep(ctx context.Context, expired, failed int) {
	l.Logger.InfoContext(ctx,
		"Offer Expiry Sweep",
		slog.Int("expired", expired),
		slog.Int("failed", failed),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
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
