package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/google/uuid"

	"github.com/pranavbafna586/MediMind/internal/domain"
)

// RequestIDHeader carries the submission ID to the backend
const RequestIDHeader = "X-Request-ID"

// loggingMiddleware tags each outgoing request with an ID and logs its outcome
func loggingMiddleware(logger *slog.Logger) client.Middleware {
	return func(next client.Endpoint) client.Endpoint {
		return func(ctx context.Context, req *protocol.Request, resp *protocol.Response) error {
			start := time.Now()

			requestID := domain.RequestIDFromContext(ctx)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			req.Header.Set(RequestIDHeader, requestID)

			log := logger.With(
				"request_id", requestID,
				"method", string(req.Method()),
				"path", string(req.URI().Path()),
			)
			log.Debug("request started")

			err := next(ctx, req, resp)

			latency := time.Since(start)
			if err != nil {
				log.Warn("request failed", "error", err, "latency_ms", latency.Milliseconds())
				return err
			}

			statusCode := resp.StatusCode()
			log = log.With(
				"status", statusCode,
				"latency", latency.String(),
				"latency_ms", latency.Milliseconds(),
			)

			if statusCode >= 500 {
				log.Error("request completed with server error")
			} else if statusCode >= 400 {
				log.Warn("request completed with client error")
			} else {
				log.Debug("request completed successfully")
			}
			return nil
		}
	}
}
