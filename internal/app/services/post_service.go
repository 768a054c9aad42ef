package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
)

// Applause toggle states
const (
	ApplauseAdded   = "added"
	ApplauseRemoved = "removed"
)

// PostService manages association posts and applause
type PostService interface {
	CreatePost(ctx context.Context, actor *authz.Actor, req *dto.PostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, actor *authz.Actor, postID int64, req *dto.PostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, actor *authz.Actor, postID int64) error
	UploadImage(ctx context.Context, actor *authz.Actor, postID int64, file *multipart.FileHeader) (*dto.UploadResponse, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	ToggleApplause(ctx context.Context, actor *authz.Actor, postID int64) (*dto.ApplauseResponse, error)
}

type postServiceImpl struct {
	postRepo PostStore
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo PostStore, storage filestorage.FileStorage, logger zerolog.Logger) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		storage:  storage,
		logger:   logger.With().Str("service", "post").Logger(),
	}
}

func normalizePost(req *dto.PostRequest) (string, string, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return "", "", apperrors.NewValidationError("title", "title is required")
	}
	if content == "" {
		return "", "", apperrors.NewValidationError("content", "content is required")
	}
	return title, content, nil
}

// CreatePost publishes a post for the calling association
func (s *postServiceImpl) CreatePost(ctx context.Context, actor *authz.Actor, req *dto.PostRequest) (*models.Post, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}
	title, content, err := normalizePost(req)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AssociationID:   actor.UserID,
		AssociationName: actor.Name,
		Title:           title,
		Content:         content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

func (s *postServiceImpl) ownedPost(ctx context.Context, actor *authz.Actor, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateOwnership(actor, post.AssociationID, "posts"); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits an owned post
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor *authz.Actor, postID int64, req *dto.PostRequest) (*models.Post, error) {
	post, err := s.ownedPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}
	post.Title, post.Content, err = normalizePost(req)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	return post, nil
}

// DeletePost removes an owned post with its applause and notifications
func (s *postServiceImpl) DeletePost(ctx context.Context, actor *authz.Actor, postID int64) error {
	post, err := s.ownedPost(ctx, actor, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if post.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadPost, *post.ImageFilename)
	}
	return nil
}

// UploadImage attaches an image to an owned post
func (s *postServiceImpl) UploadImage(ctx context.Context, actor *authz.Actor, postID int64, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	post, err := s.ownedPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	filename, err := s.storage.Save(file, domain.UploadPost)
	if err != nil {
		return nil, imageError(err)
	}
	if err := s.postRepo.UpdateImage(ctx, postID, filename); err != nil {
		_ = s.storage.Delete(domain.UploadPost, filename)
		return nil, err
	}
	if post.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadPost, *post.ImageFilename)
	}
	return uploadResponse(domain.UploadPost, filename), nil
}

// GetPost returns one post
func (s *postServiceImpl) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// ToggleApplause adds or removes the caller's applause
func (s *postServiceImpl) ToggleApplause(ctx context.Context, actor *authz.Actor, postID int64) (*dto.ApplauseResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	res, err := s.postRepo.ToggleApplauseTx(ctx, post, actor.UserID, actor.Name)
	if err != nil {
		return nil, err
	}

	status := ApplauseRemoved
	if res.Added {
		status = ApplauseAdded
	}
	return &dto.ApplauseResponse{Status: status, Count: res.Count}, nil
}
