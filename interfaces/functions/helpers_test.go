package functions

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/application/services"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/identity/cognito"
	postsdb "github.com/ciprian88m/user-posts-lambda/infrastructure/persistence/dynamodb"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const caller = "e654ebca-38e0-487a-b609-0284923be582"

// MockDynamoDB is a testify mock of the posts table client
type MockDynamoDB struct {
	mock.Mock
}

func (m *MockDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.QueryOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.PutItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.DeleteItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCognito is a testify mock of the user pool client
type MockCognito struct {
	mock.Mock
}

func (m *MockCognito) AdminCreateUser(ctx context.Context, params *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cip.AdminCreateUserOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCognito) AdminSetUserPassword(ctx context.Context, params *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cip.AdminSetUserPasswordOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCognito) AdminInitiateAuth(ctx context.Context, params *cip.AdminInitiateAuthInput, optFns ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cip.AdminInitiateAuthOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

// callFailed is the service error the SDK returns for a failed call
func callFailed(service, operation string) error {
	return &smithy.OperationError{
		ServiceID:     service,
		OperationName: operation,
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusInternalServerError}},
				Err:      &smithy.GenericAPIError{Code: "InternalFailure", Message: "Call failed"},
			},
		},
	}
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func newPostsFunctions(db *MockDynamoDB, metrics *observability.Collector) *PostsFunctions {
	logger := zap.NewNop()
	repo := postsdb.NewPostRepository(db, "posts", nil, logger)
	service := services.NewPostsService(repo, ports.NoopEventPublisher{}, metrics, logger)
	return NewPostsFunctions(service, metrics, logger)
}

func newUserFunctions(pool *MockCognito) *UserFunctions {
	logger := zap.NewNop()
	identity := cognito.NewIdentityProvider(pool, "eu-central-1_pool", "client-123", nil, logger)
	service := services.NewUserService(identity, ports.NoopEventPublisher{}, nil, logger)
	return NewUserFunctions(service, nil, logger)
}
