package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"partyup/internal/domain"
	"partyup/internal/repository"
	"partyup/pkg/errors"
	"partyup/pkg/redis"
)

type PartyService struct {
	partyRepo    *repository.PartyRepository
	gameRepo     *repository.GameRepository
	userRepo     *repository.UserRepository
	cacheService *CacheService
	logger       *zap.Logger
}

func NewPartyService(partyRepo *repository.PartyRepository, gameRepo *repository.GameRepository, userRepo *repository.UserRepository, redisClient *redis.Client, logger *zap.Logger) *PartyService {
	return &PartyService{
		partyRepo:    partyRepo,
		gameRepo:     gameRepo,
		userRepo:     userRepo,
		cacheService: NewCacheService(redisClient, logger),
		logger:       logger,
	}
}

// ListParties returns parties through the list-view pipeline: the full set
// is loaded (cached), then the pure filter recomputes the view per request.
func (s *PartyService) ListParties(ctx context.Context, filter domain.PartyFilter) ([]domain.Party, error) {
	parties, err := s.cacheService.GetPartiesWithCache(ctx, s.partyRepo.ListParties)
	if err != nil {
		return nil, err
	}
	return domain.FilterParties(parties, filter, time.Now()), nil
}

// GetParty returns a single party, cached per id
func (s *PartyService) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.cacheService.GetPartyWithCache(ctx, partyID, func(ctx context.Context) (*domain.Party, error) {
		return s.partyRepo.GetPartyByID(ctx, partyID)
	})
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, errors.NewNotFoundError("party not found")
	}
	return party, nil
}

// CreateParty creates a party with the caller as leader
func (s *PartyService) CreateParty(ctx context.Context, profile *domain.UserProfile, req *domain.PartyRequest) (*domain.Party, error) {
	leader, err := s.userRepo.UpsertUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := s.gameRepo.UpsertGame(ctx, &req.Game); err != nil {
		return nil, err
	}

	party := &domain.Party{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Game:       req.Game,
		Leader:     *leader,
		Members:    []domain.User{*leader},
		LookingFor: req.LookingFor,
		Date:       req.Date,
		Details:    req.Details,
	}

	if err := s.partyRepo.CreateParty(ctx, party); err != nil {
		return nil, err
	}

	s.cacheService.InvalidatePartyCaches(ctx, party.ID)

	s.logger.Info("Party created",
		zap.String("party_id", party.ID),
		zap.String("leader_id", leader.ID))

	return party, nil
}

// UpdateParty rewrites core fields. Leader only. Lowering lookingFor below
// the current net membership is allowed; openings go negative and display
// clamps (the filled filter keeps overfull parties visible).
func (s *PartyService) UpdateParty(ctx context.Context, profile *domain.UserProfile, partyID string, req *domain.PartyRequest) (*domain.Party, error) {
	party, err := s.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.Leader.ID != profile.ID {
		return nil, errors.NewAuthorizationError("only the party leader can edit the party")
	}

	if err := s.gameRepo.UpsertGame(ctx, &req.Game); err != nil {
		return nil, err
	}

	party.Name = req.Name
	party.Game = req.Game
	party.LookingFor = req.LookingFor
	party.Date = req.Date
	party.Details = req.Details

	if err := s.partyRepo.UpdateParty(ctx, party); err != nil {
		return nil, err
	}

	s.cacheService.InvalidatePartyCaches(ctx, partyID)

	return party, nil
}

// DeleteParty removes a party. Leader only.
func (s *PartyService) DeleteParty(ctx context.Context, profile *domain.UserProfile, partyID string) error {
	party, err := s.GetParty(ctx, partyID)
	if err != nil {
		return err
	}
	if party.Leader.ID != profile.ID {
		return errors.NewAuthorizationError("only the party leader can delete the party")
	}

	if err := s.partyRepo.DeleteParty(ctx, partyID); err != nil {
		return err
	}

	s.cacheService.InvalidatePartyCaches(ctx, partyID)

	return nil
}

// JoinParty seats the caller on the roster. The roster rules are checked
// up front for a fast error, but the repository re-checks capacity under a
// row lock; with two joins racing for the last opening exactly one wins.
func (s *PartyService) JoinParty(ctx context.Context, profile *domain.UserProfile, partyID string) (*domain.Party, error) {
	if _, err := s.userRepo.UpsertUser(ctx, profile); err != nil {
		return nil, err
	}

	party, err := s.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if err := party.CheckJoin(profile.ID); err != nil {
		return nil, err
	}

	if err := s.partyRepo.AddMember(ctx, partyID, profile.ID); err != nil {
		return nil, err
	}

	s.cacheService.InvalidatePartyCaches(ctx, partyID)

	return s.GetParty(ctx, partyID)
}

// LeaveParty removes the caller from the roster. The leader cannot leave;
// they delete the party instead.
func (s *PartyService) LeaveParty(ctx context.Context, profile *domain.UserProfile, partyID string) (*domain.Party, error) {
	party, err := s.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if err := party.CheckLeave(profile.ID); err != nil {
		return nil, err
	}

	if err := s.partyRepo.RemoveMember(ctx, partyID, profile.ID); err != nil {
		return nil, err
	}

	s.cacheService.InvalidatePartyCaches(ctx, partyID)

	return s.GetParty(ctx, partyID)
}
