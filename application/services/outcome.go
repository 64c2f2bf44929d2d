package services

import (
	"context"
	"net/http"
	"time"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"

	"go.uber.org/zap"
)

// Backend labels used for failure metrics
const (
	BackendStorage  = "dynamodb"
	BackendIdentity = "cognito"
)

// failureOf extracts the backend-reported status and message from an
// adapter error. Errors that carry no status are reported as 500.
func failureOf(err error) (int, string) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.HTTPStatus, appErr.Message
	}
	if status, message, ok := apperrors.ParseStatus(err.Error()); ok {
		return status, message
	}
	return http.StatusInternalServerError, err.Error()
}

// publish delivers an event without letting a publish failure affect the
// caller's outcome.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, eventType, userID, subject string) {
	if publisher == nil {
		return
	}
	event := ports.Event{
		Type:       eventType,
		UserID:     userID,
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("eventType", eventType),
			zap.Error(err),
		)
	}
}
