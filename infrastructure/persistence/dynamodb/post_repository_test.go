package dynamodb

import (
	"context"
	"net/http"
	"testing"

	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockDBClient is a testify mock of DBClient
type MockDBClient struct {
	mock.Mock
}

func (m *MockDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.QueryOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.PutItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDBClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.DeleteItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryTable is an in-memory stand-in for the posts table. It only
// understands the single-value key condition the repository builds.
type memoryTable struct {
	items map[string]map[string]map[string]types.AttributeValue
}

func newMemoryTable() *memoryTable {
	return &memoryTable{items: make(map[string]map[string]map[string]types.AttributeValue)}
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (t *memoryTable) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	var userID string
	for _, v := range params.ExpressionAttributeValues {
		userID = v.(*types.AttributeValueMemberS).Value
	}

	var items []map[string]types.AttributeValue
	for _, item := range t.items[userID] {
		items = append(items, item)
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (t *memoryTable) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	userID := stringAttr(params.Item, AttrUserID)
	if t.items[userID] == nil {
		t.items[userID] = make(map[string]map[string]types.AttributeValue)
	}
	t.items[userID][stringAttr(params.Item, AttrPostTitle)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (t *memoryTable) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(t.items[stringAttr(params.Key, AttrUserID)], stringAttr(params.Key, AttrPostTitle))
	return &dynamodb.DeleteItemOutput{}, nil
}

func callFailed() error {
	return &smithy.OperationError{
		ServiceID:     "DynamoDB",
		OperationName: "Query",
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: 500}},
				Err:      &smithy.GenericAPIError{Code: "InternalServerError", Message: "Call failed"},
			},
		},
	}
}

const testUser = "e654ebca-38e0-487a-b609-0284923be582"

func TestPostRepository_FindByUser_MapsItems(t *testing.T) {
	// Arrange
	ctx := context.Background()
	client := new(MockDBClient)
	client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.TableName == "posts" && len(in.ExpressionAttributeValues) == 1
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{{
		AttrUserID:    &types.AttributeValueMemberS{Value: testUser},
		AttrPostTitle: &types.AttributeValueMemberS{Value: "Tests are important"},
		AttrPostBody:  &types.AttributeValueMemberS{Value: "Lorem ipsum"},
		AttrPostTags:  &types.AttributeValueMemberS{Value: "testing,junit"},
	}}}, nil)

	repo := NewPostRepository(client, "posts", nil, zap.NewNop())

	// Act
	posts, err := repo.FindByUser(ctx, testUser)

	// Assert
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Tests are important", posts[0].PostTitle)
	assert.Equal(t, "Lorem ipsum", posts[0].PostBody)
	assert.Equal(t, []string{"testing", "junit"}, posts[0].PostTags)
	client.AssertExpectations(t)
}

func TestPostRepository_FindByUser_Failure(t *testing.T) {
	ctx := context.Background()
	client := new(MockDBClient)
	client.On("Query", ctx, mock.Anything).Return(nil, callFailed())

	repo := NewPostRepository(client, "posts", nil, zap.NewNop())

	posts, err := repo.FindByUser(ctx, testUser)

	assert.Nil(t, posts)
	require.Error(t, err)
	assert.EqualError(t, err, "500 Call failed")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestPostRepository_Save_WritesDefaults(t *testing.T) {
	ctx := context.Background()
	client := new(MockDBClient)
	client.On("PutItem", ctx, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		return *in.TableName == "posts" &&
			stringAttr(in.Item, AttrUserID) == testUser &&
			stringAttr(in.Item, AttrPostTitle) == "Untitled body" &&
			stringAttr(in.Item, AttrPostBody) == "" &&
			stringAttr(in.Item, AttrPostTags) == ""
	})).Return(&dynamodb.PutItemOutput{}, nil)

	repo := NewPostRepository(client, "posts", nil, zap.NewNop())

	err := repo.Save(ctx, testUser, entities.Post{PostTitle: "Untitled body"})

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPostRepository_Save_Failure(t *testing.T) {
	ctx := context.Background()
	client := new(MockDBClient)
	client.On("PutItem", ctx, mock.Anything).Return(nil, callFailed())

	repo := NewPostRepository(client, "posts", nil, zap.NewNop())

	err := repo.Save(ctx, testUser, entities.Post{PostTitle: "t"})

	assert.EqualError(t, err, "500 Call failed")
}

func TestPostRepository_Delete_UsesCompositeKey(t *testing.T) {
	ctx := context.Background()
	client := new(MockDBClient)
	client.On("DeleteItem", ctx, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return len(in.Key) == 2 &&
			stringAttr(in.Key, AttrUserID) == testUser &&
			stringAttr(in.Key, AttrPostTitle) == "Tests are important"
	})).Return(&dynamodb.DeleteItemOutput{}, nil)

	repo := NewPostRepository(client, "posts", nil, zap.NewNop())

	err := repo.Delete(ctx, testUser, "Tests are important")

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPostRepository_Delete_Failure(t *testing.T) {
	ctx := context.Background()
	client := new(MockDBClient)
	client.On("DeleteItem", ctx, mock.Anything).Return(nil, callFailed())

	repo := NewPostRepository(client, "posts", nil, zap.NewNop())

	assert.EqualError(t, repo.Delete(ctx, testUser, "t"), "500 Call failed")
}

func TestPostRepository_SaveThenFind_RoundTripsTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{name: "absent tags", tags: nil, want: []string{}},
		{name: "empty tags", tags: []string{}, want: []string{}},
		{name: "ordered tags", tags: []string{"a", "b"}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewPostRepository(newMemoryTable(), "posts", nil, zap.NewNop())

			require.NoError(t, repo.Save(ctx, testUser, entities.Post{PostTitle: "p", PostBody: "b", PostTags: tt.tags}))
			posts, err := repo.FindByUser(ctx, testUser)

			require.NoError(t, err)
			require.Len(t, posts, 1)
			assert.Equal(t, tt.want, posts[0].PostTags)
		})
	}
}

func TestPostRepository_DeleteRemovesOnlyThatTitle(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newMemoryTable(), "posts", nil, zap.NewNop())

	require.NoError(t, repo.Save(ctx, testUser, entities.Post{PostTitle: "keep"}))
	require.NoError(t, repo.Save(ctx, testUser, entities.Post{PostTitle: "drop"}))
	require.NoError(t, repo.Save(ctx, "someone-else", entities.Post{PostTitle: "drop"}))

	require.NoError(t, repo.Delete(ctx, testUser, "drop"))

	mine, err := repo.FindByUser(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "keep", mine[0].PostTitle)

	theirs, err := repo.FindByUser(ctx, "someone-else")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
