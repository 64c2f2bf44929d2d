// Package main is the Lambda entry point. With FUNCTION_NAME set it serves
// that single named function on raw JSON envelopes; otherwise it serves
// the REST router behind an API Gateway HTTP API.
package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/ciprian88m/user-posts-lambda/infrastructure/config"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/di"
	"github.com/ciprian88m/user-posts-lambda/interfaces/functions"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"
)

// authorizerSubjectClaim is the JWT authorizer claim carrying the caller id
const authorizerSubjectClaim = "sub"

func main() {
	coldStartTime := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Cleanup()

	container.Logger.Info("Lambda cold start completed",
		zap.String("function", cfg.FunctionName),
		zap.Duration("duration", time.Since(coldStartTime)),
	)

	if name := cfg.FunctionName; name != "" {
		handler, err := container.Registry.Lookup(name)
		if err != nil {
			container.Logger.Fatal("Cannot start function", zap.Error(err))
		}
		lambda.Start(functionHandler(handler))
		return
	}

	lambda.Start(proxyHandler(chiadapter.NewV2(container.Router.Setup()), container.Logger))
}

// functionHandler serves a named function on the raw invocation payload
func functionHandler(handler functions.Handler) func(context.Context, json.RawMessage) (common.Response, error) {
	return func(ctx context.Context, payload json.RawMessage) (common.Response, error) {
		return handler(ctx, string(payload))
	}
}

// proxyHandler serves the router behind API Gateway. The caller id header
// is always replaced by the authorizer's subject claim.
func proxyHandler(adapter *chiadapter.ChiLambdaV2, logger *zap.Logger) func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		applyAuthorizerSubject(&req)

		resp, err := adapter.ProxyWithContextV2(ctx, req)
		if err != nil {
			logger.Error("Proxy request failed",
				zap.String("path", req.RawPath),
				zap.String("requestID", req.RequestContext.RequestID),
				zap.Error(err),
			)
		}
		return resp, err
	}
}

// applyAuthorizerSubject drops any client-supplied caller id header and
// sets it from the JWT authorizer claims when present.
func applyAuthorizerSubject(req *events.APIGatewayV2HTTPRequest) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	for name := range req.Headers {
		if strings.EqualFold(name, common.CallerIDHeader) {
			delete(req.Headers, name)
		}
	}

	authorizer := req.RequestContext.Authorizer
	if authorizer == nil || authorizer.JWT == nil {
		return
	}
	if sub := authorizer.JWT.Claims[authorizerSubjectClaim]; sub != "" {
		req.Headers[common.CallerIDHeader] = sub
	}
}
