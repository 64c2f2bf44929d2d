package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAuthorizerSubject(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{
		Headers: map[string]string{"Sub": "spoofed", "content-type": "application/json"},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			Authorizer: &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
				JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{
					Claims: map[string]string{"sub": "e654ebca-38e0-487a-b609-0284923be582"},
				},
			},
		},
	}

	applyAuthorizerSubject(&req)

	assert.Equal(t, map[string]string{
		"sub":          "e654ebca-38e0-487a-b609-0284923be582",
		"content-type": "application/json",
	}, req.Headers)
}

func TestApplyAuthorizerSubject_NoAuthorizer(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{Headers: map[string]string{"sub": "spoofed"}}

	applyAuthorizerSubject(&req)

	assert.Empty(t, req.Headers)
}

func TestFunctionHandler_PassesRawPayload(t *testing.T) {
	var received string
	handler := functionHandler(func(_ context.Context, raw string) (common.Response, error) {
		received = raw
		return common.NewResponse(http.StatusNoContent), nil
	})

	resp, err := handler(context.Background(), json.RawMessage(`{"headers":{"sub":"u"}}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status())
	assert.Equal(t, `{"headers":{"sub":"u"}}`, received)
}

func TestFunctionHandler_RaisesError(t *testing.T) {
	handler := functionHandler(func(context.Context, string) (common.Response, error) {
		return nil, apperrors.NewForbiddenError(apperrors.MsgInvalidUserID)
	})

	resp, err := handler(context.Background(), json.RawMessage(`{}`))

	assert.Nil(t, resp)
	assert.EqualError(t, err, "403 Invalid user id")
}
