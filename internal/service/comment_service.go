package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"partyup/internal/domain"
	"partyup/internal/repository"
	"partyup/pkg/errors"
	"partyup/pkg/redis"
)

type CommentService struct {
	commentRepo  *repository.CommentRepository
	userRepo     *repository.UserRepository
	games        GameStore
	cacheService *CacheService
	logger       *zap.Logger
}

func NewCommentService(commentRepo *repository.CommentRepository, userRepo *repository.UserRepository, games GameStore, redisClient *redis.Client, logger *zap.Logger) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		games:        games,
		cacheService: NewCacheService(redisClient, logger),
		logger:       logger,
	}
}

// CommentListOptions is the explicit view-model state for comment lists
type CommentListOptions struct {
	PartyID string
	GameID  int64
	Sort    domain.CommentSort
	Limit   int
	ShowAll bool
}

// ListComments returns comments for a party or a game, sorted (stable) and
// trimmed to the display window
func (s *CommentService) ListComments(ctx context.Context, opts CommentListOptions) ([]domain.Comment, error) {
	var comments []domain.Comment
	var err error

	switch {
	case opts.PartyID != "":
		comments, err = s.commentRepo.ListByParty(ctx, opts.PartyID)
	case opts.GameID != 0:
		comments, err = s.commentRepo.ListByGame(ctx, opts.GameID)
	default:
		return nil, errors.NewValidationError("a party or game must be specified")
	}
	if err != nil {
		return nil, err
	}

	domain.SortComments(comments, opts.Sort)

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DisplayLimit
	}
	return domain.PaginateDisplay(comments, limit, opts.ShowAll), nil
}

// CreateComment posts a comment against a party or a game. A game-scoped
// comment must reference a game already stored locally.
func (s *CommentService) CreateComment(ctx context.Context, profile *domain.UserProfile, req *domain.CommentRequest) (*domain.Comment, error) {
	if req.GameID != 0 {
		game, err := s.games.GetGameByID(ctx, req.GameID)
		if err != nil {
			return nil, err
		}
		if game == nil {
			return nil, errors.NewNotFoundError("game not found")
		}
	}

	author, err := s.userRepo.UpsertUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:      uuid.New().String(),
		PartyID: req.PartyID,
		GameID:  req.GameID,
		User:    *author,
		Text:    req.Text,
	}

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment. Author only.
func (s *CommentService) DeleteComment(ctx context.Context, profile *domain.UserProfile, commentID string) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return errors.NewNotFoundError("comment not found")
	}
	if comment.User.ID != profile.ID {
		return errors.NewAuthorizationError("only the author can delete this comment")
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.cacheService.UpdateLikedComment(ctx, profile.ID, commentID, false)

	return nil
}

// ToggleLike flips the caller's like on a comment. A short-lived lock
// rejects rapid double-submission of the same toggle; the flip itself and
// the aggregate count move together in one transaction.
func (s *CommentService) ToggleLike(ctx context.Context, profile *domain.UserProfile, commentID string) (*domain.LikeToggleResult, error) {
	if _, err := s.userRepo.UpsertUser(ctx, profile); err != nil {
		return nil, err
	}

	acquired, err := s.cacheService.TryLikeToggleLock(ctx, profile.ID, commentID)
	if err != nil {
		// Lock is a guard, not a gate; proceed without it
		s.logger.Warn("Failed to acquire like toggle lock",
			zap.String("comment_id", commentID),
			zap.Error(err))
	} else if !acquired {
		return nil, errors.NewConflictError("like toggle already in progress")
	}

	result, err := s.commentRepo.ToggleLike(ctx, commentID, profile.ID)
	if err != nil {
		return nil, err
	}

	s.cacheService.UpdateLikedComment(ctx, profile.ID, commentID, result.Liked)

	return result, nil
}

// GetLikedCommentIDs returns every comment id the caller has liked,
// hydrated once per view-load. Failures here only degrade the liked
// rendering, so callers may treat errors as soft.
func (s *CommentService) GetLikedCommentIDs(ctx context.Context, profile *domain.UserProfile) ([]string, error) {
	return s.cacheService.GetLikedCommentIDsWithCache(ctx, profile.ID, s.commentRepo.ListLikedCommentIDs)
}
