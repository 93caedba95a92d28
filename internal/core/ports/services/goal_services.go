package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/utils/forecast"
)

// GoalSvcFacade manages savings goals and their pacing.
type GoalSvcFacade interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, forecast.GoalPacing, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, []forecast.GoalPacing, error)
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, forecast.GoalPacing, error)
	AddToGoal(ctx context.Context, userID string, goalID string, req dto.AddToGoalRequest) (*domain.Goal, forecast.GoalPacing, error)
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}
