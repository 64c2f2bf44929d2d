// Package functions holds the named request handlers. Each takes the raw
// JSON envelope {headers, body}, validates it, calls a service and either
// returns the success envelope or raises an *errors.AppError rendered as
// "{status} {message}".
package functions

import (
	"context"
	"net/http"
	"time"

	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"
	"github.com/ciprian88m/user-posts-lambda/pkg/utils"

	"github.com/aws/aws-lambda-go/lambdacontext"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// invocation tracks one handler call for logging and metrics
type invocation struct {
	name    string
	start   time.Time
	metrics *observability.Collector
	logger  *zap.Logger
}

func begin(ctx context.Context, name string, metrics *observability.Collector, logger *zap.Logger) *invocation {
	return &invocation{
		name:    name,
		start:   time.Now(),
		metrics: metrics,
		logger: logger.With(
			zap.String("function", name),
			zap.String("requestID", requestID(ctx)),
		),
	}
}

// end records the outcome. resp is only read when err is nil.
func (inv *invocation) end(resp common.Response, err error) {
	status := http.StatusInternalServerError
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			status = appErr.HTTPStatus
		}
		inv.logger.Warn("Request failed",
			zap.Int("status", status),
			zap.String("error", err.Error()),
		)
	} else {
		status = resp.Status()
		inv.logger.Debug("Request completed", zap.Int("status", status))
	}
	inv.metrics.ObserveInvocation(inv.name, status, time.Since(inv.start))
}

// requestID prefers the Lambda request id, then the HTTP request id, and
// otherwise generates one.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// decode parses the envelope and checks the caller id header when
// requireCaller is set. The body is validated when requireBody is set.
func decode[T any](raw string, requireCaller, requireBody bool) (*common.Request[T], error) {
	req, err := common.DecodeRequest[T](raw)
	if err != nil {
		return nil, apperrors.NewDeserializationError(err)
	}

	if requireCaller && !common.HasLength(req.CallerID()) {
		return nil, apperrors.NewForbiddenError(apperrors.MsgInvalidUserID)
	}

	if requireBody {
		if req.Body == nil {
			return nil, apperrors.NewValidationError(apperrors.MsgInvalidData)
		}
		if err := utils.ValidateStruct(req.Body); err != nil {
			return nil, apperrors.NewValidationError(apperrors.MsgInvalidData).WithCause(err)
		}
	}

	return req, nil
}

// finish raises the envelope's failure as an error, or returns it
// unchanged when valid.
func finish[R common.Response](resp R) (R, error) {
	if !resp.IsValid() {
		var zero R
		return zero, apperrors.FromStatus(resp.Status(), resp.Message())
	}
	return resp, nil
}
