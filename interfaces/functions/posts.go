package functions

import (
	"context"

	"github.com/ciprian88m/user-posts-lambda/application/services"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"go.uber.org/zap"
)

// PostsFunctions exposes the post operations of the caller named by the
// caller id header.
type PostsFunctions struct {
	service *services.PostsService
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewPostsFunctions creates the post handlers
func NewPostsFunctions(service *services.PostsService, metrics *observability.Collector, logger *zap.Logger) *PostsFunctions {
	return &PostsFunctions{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// GetPosts lists every post stored for the caller
func (f *PostsFunctions) GetPosts(ctx context.Context, raw string) (resp *common.PostsResponse, err error) {
	inv := begin(ctx, FuncGetPosts, f.metrics, f.logger)
	defer func() { inv.end(resp, err) }()

	req, err := decode[entities.Post](raw, true, false)
	if err != nil {
		return nil, err
	}

	inv.logger.Info("Getting posts", zap.String("userID", req.CallerID()))
	return finish(f.service.GetPosts(ctx, req.CallerID()))
}

// SavePost creates or replaces a post keyed by its title
func (f *PostsFunctions) SavePost(ctx context.Context, raw string) (resp *common.GenericResponse, err error) {
	inv := begin(ctx, FuncSavePost, f.metrics, f.logger)
	defer func() { inv.end(resp, err) }()

	req, err := decode[entities.Post](raw, true, true)
	if err != nil {
		return nil, err
	}

	inv.logger.Info("Saving post",
		zap.String("userID", req.CallerID()),
		zap.String("postTitle", req.Body.PostTitle),
	)
	return finish(f.service.SavePost(ctx, req.CallerID(), *req.Body))
}

// DeletePost removes the post with the body's title. The body is
// validated in full even though only the title is used.
func (f *PostsFunctions) DeletePost(ctx context.Context, raw string) (resp *common.GenericResponse, err error) {
	inv := begin(ctx, FuncDeletePost, f.metrics, f.logger)
	defer func() { inv.end(resp, err) }()

	req, err := decode[entities.Post](raw, true, true)
	if err != nil {
		return nil, err
	}

	inv.logger.Info("Deleting post",
		zap.String("userID", req.CallerID()),
		zap.String("postTitle", req.Body.PostTitle),
	)
	return finish(f.service.DeletePost(ctx, req.CallerID(), *req.Body))
}
