package services

import (
	"context"
	"net/http"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"go.uber.org/zap"
)

// PostsService reads and writes a caller's posts. Backend failures are
// folded into the returned envelope rather than returned as errors.
type PostsService struct {
	repo      ports.PostRepository
	publisher ports.EventPublisher
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewPostsService creates a new posts service
func NewPostsService(
	repo ports.PostRepository,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *PostsService {
	return &PostsService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetPosts returns every post stored for the user with status 200
func (s *PostsService) GetPosts(ctx context.Context, userID string) *common.PostsResponse {
	posts, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		resp := &common.PostsResponse{}
		s.fail(&resp.GenericResponse, err)
		return resp
	}

	return &common.PostsResponse{
		GenericResponse: *common.NewResponse(http.StatusOK),
		Posts:           posts,
	}
}

// SavePost writes the post under the user's partition with status 201
func (s *PostsService) SavePost(ctx context.Context, userID string, post entities.Post) *common.GenericResponse {
	resp := common.NewResponse(http.StatusCreated)
	if err := s.repo.Save(ctx, userID, post); err != nil {
		s.fail(resp, err)
		return resp
	}

	publish(ctx, s.publisher, s.logger, ports.EventPostSaved, userID, post.PostTitle)
	return resp
}

// DeletePost removes the post with the given title with status 204
func (s *PostsService) DeletePost(ctx context.Context, userID string, post entities.Post) *common.GenericResponse {
	resp := common.NewResponse(http.StatusNoContent)
	if err := s.repo.Delete(ctx, userID, post.PostTitle); err != nil {
		s.fail(resp, err)
		return resp
	}

	publish(ctx, s.publisher, s.logger, ports.EventPostDeleted, userID, post.PostTitle)
	return resp
}

func (s *PostsService) fail(resp *common.GenericResponse, err error) {
	status, message := failureOf(err)
	s.metrics.ObserveBackendFailure(BackendStorage, status)
	resp.Fail(status, message)
}
