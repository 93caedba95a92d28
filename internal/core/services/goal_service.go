package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/utils/forecast"
	"github.com/shopspring/decimal"
)

// goalService manages savings goals and derives their pacing.
type goalService struct {
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade) portssvc.GoalSvcFacade {
	return &goalService{
		goalRepo: goalRepo,
	}
}

// Ensure goalService implements the portssvc.GoalSvcFacade interface
var _ portssvc.GoalSvcFacade = (*goalService)(nil)

// CreateGoal persists a new goal for the user.
// Implements portssvc.GoalSvcFacade
func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, forecast.GoalPacing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, forecast.GoalPacing{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	now := time.Now().UTC()
	goal := domain.Goal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    req.TargetDate.UTC(),
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		logger.Error("Failed to save goal", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, forecast.GoalPacing{}, fmt.Errorf("failed to save goal: %w", err)
	}

	logger.Info("Goal created", slog.String("goal_id", goal.GoalID), slog.String("name", goal.Name))
	return &goal, s.pacing(goal, now), nil
}

// ListGoals retrieves the user's goals with pacing, index-aligned.
// Implements portssvc.GoalSvcFacade
func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, []forecast.GoalPacing, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list goals: %w", err)
	}

	now := time.Now().UTC()
	pacings := make([]forecast.GoalPacing, len(goals))
	for i, goal := range goals {
		pacings[i] = s.pacing(goal, now)
	}
	return goals, pacings, nil
}

// UpdateGoal updates a goal's details. Completion latches: once reached it
// stays completed even if the target is later raised.
// Implements portssvc.GoalSvcFacade
func (s *goalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, forecast.GoalPacing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, forecast.GoalPacing{}, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return nil, forecast.GoalPacing{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		updated.TargetAmount = *req.TargetAmount
	}
	if req.TargetDate != nil {
		updated.TargetDate = req.TargetDate.UTC()
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.CurrentAmount != nil {
		updated.CurrentAmount = *req.CurrentAmount
	}
	if updated.CurrentAmount.GreaterThanOrEqual(updated.TargetAmount) {
		updated.IsCompleted = true
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, updated); err != nil {
		logger.Error("Failed to update goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		return nil, forecast.GoalPacing{}, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}

	logger.Info("Goal updated", slog.String("goal_id", goalID))
	return &updated, s.pacing(updated, now), nil
}

// AddToGoal adds saved money to a goal's current amount.
// Implements portssvc.GoalSvcFacade
func (s *goalService) AddToGoal(ctx context.Context, userID string, goalID string, req dto.AddToGoalRequest) (*domain.Goal, forecast.GoalPacing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, forecast.GoalPacing{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	existing, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, forecast.GoalPacing{}, err
	}

	updated := *existing
	updated.CurrentAmount = updated.CurrentAmount.Add(req.Amount)
	if updated.CurrentAmount.GreaterThanOrEqual(updated.TargetAmount) {
		updated.IsCompleted = true
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, updated); err != nil {
		logger.Error("Failed to add to goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		return nil, forecast.GoalPacing{}, fmt.Errorf("failed to add to goal %s: %w", goalID, err)
	}

	logger.Info("Goal contribution recorded", slog.String("goal_id", goalID), slog.String("amount", req.Amount.String()))
	return &updated, s.pacing(updated, now), nil
}

// DeleteGoal removes a goal permanently.
// Implements portssvc.GoalSvcFacade
func (s *goalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getOwnedGoal(ctx, userID, goalID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		logger.Error("Failed to delete goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}

	logger.Info("Goal deleted", slog.String("goal_id", goalID))
	return nil
}

func (s *goalService) pacing(goal domain.Goal, now time.Time) forecast.GoalPacing {
	return forecast.GoalProgress(goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, now)
}

func (s *goalService) getOwnedGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find goal %s: %w", goalID, err)
	}
	if goal.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return goal, nil
}
