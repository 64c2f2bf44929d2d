package dynamodb

import (
	"context"
	"fmt"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	apperrors "github.com/ciprian88m/user-posts-lambda/pkg/errors"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Attribute names of the posts table. UserId is the partition key and
// PostTitle the sort key.
const (
	AttrUserID    = "UserId"
	AttrPostTitle = "PostTitle"
	AttrPostBody  = "PostBody"
	AttrPostTags  = "PostTags"
)

// DBClient defines the DynamoDB operations the repository needs, making
// it testable.
type DBClient interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// postItem is the stored shape of a post. Tags are kept as one
// comma-joined string.
type postItem struct {
	UserID    string `dynamodbav:"UserId"`
	PostTitle string `dynamodbav:"PostTitle"`
	PostBody  string `dynamodbav:"PostBody"`
	PostTags  string `dynamodbav:"PostTags"`
}

type postKey struct {
	UserID    string `dynamodbav:"UserId"`
	PostTitle string `dynamodbav:"PostTitle"`
}

// PostRepository implements ports.PostRepository on a DynamoDB table
type PostRepository struct {
	client    DBClient
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(client DBClient, tableName string, tracer *observability.Tracer, logger *zap.Logger) *PostRepository {
	return &PostRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

var _ ports.PostRepository = (*PostRepository)(nil)

// FindByUser queries every item in the user's partition. All result pages
// are read.
func (r *PostRepository) FindByUser(ctx context.Context, userID string) ([]entities.Post, error) {
	keyCond := expression.Key(AttrUserID).Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to build query: %v", err)).WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []postItem
	err = r.tracer.TraceFunction(ctx, "dynamodb.Query", func(ctx context.Context) error {
		paginator := dynamodb.NewQueryPaginator(r.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}

			var pageItems []postItem
			if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
				return apperrors.NewInternalError(fmt.Sprintf("failed to unmarshal posts: %v", err)).WithCause(err)
			}
			items = append(items, pageItems...)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("Failed to query posts",
			zap.String("userID", userID),
			zap.String("table", r.tableName),
			zap.Error(err),
		)
		return nil, apperrors.FromAWSError(err)
	}

	posts := make([]entities.Post, 0, len(items))
	for _, item := range items {
		posts = append(posts, entities.Post{
			PostTitle: item.PostTitle,
			PostBody:  item.PostBody,
			PostTags:  entities.SplitTags(item.PostTags),
		})
	}

	r.logger.Debug("Queried posts",
		zap.String("userID", userID),
		zap.Int("count", len(posts)),
	)

	return posts, nil
}

// Save writes the post. A missing body is stored as the empty string and
// an empty tag list as the empty tag string.
func (r *PostRepository) Save(ctx context.Context, userID string, post entities.Post) error {
	item := postItem{
		UserID:    userID,
		PostTitle: post.PostTitle,
		PostBody:  post.PostBody,
		PostTags:  entities.JoinTags(post.PostTags),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to marshal post: %v", err)).WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	err = r.tracer.TraceFunction(ctx, "dynamodb.PutItem", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, input)
		return err
	})
	if err != nil {
		r.logger.Warn("Failed to save post",
			zap.String("userID", userID),
			zap.String("postTitle", post.PostTitle),
			zap.Error(err),
		)
		return apperrors.FromAWSError(err)
	}

	r.logger.Debug("Saved post",
		zap.String("userID", userID),
		zap.String("postTitle", post.PostTitle),
	)

	return nil
}

// Delete removes the item keyed by (userID, postTitle). Deleting an absent
// item succeeds.
func (r *PostRepository) Delete(ctx context.Context, userID, postTitle string) error {
	key, err := attributevalue.MarshalMap(postKey{UserID: userID, PostTitle: postTitle})
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to marshal key: %v", err)).WithCause(err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	}

	err = r.tracer.TraceFunction(ctx, "dynamodb.DeleteItem", func(ctx context.Context) error {
		_, err := r.client.DeleteItem(ctx, input)
		return err
	})
	if err != nil {
		r.logger.Warn("Failed to delete post",
			zap.String("userID", userID),
			zap.String("postTitle", postTitle),
			zap.Error(err),
		)
		return apperrors.FromAWSError(err)
	}

	r.logger.Debug("Deleted post",
		zap.String("userID", userID),
		zap.String("postTitle", postTitle),
	)

	return nil
}
