package service

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/store"
	"github.com/templui/screentime/internal/validation"
)

var (
	ErrGoalConflict = errors.New("a goal for this target already exists")
)

type GoalService struct {
	store *store.Store
}

func NewGoalService(store *store.Store) *GoalService {
	return &GoalService{store: store}
}

func (s *GoalService) Create(ctx context.Context, goal model.Goal) (model.Goal, error) {
	validation.NormalizeGoal(&goal)
	err := validation.ValidateGoal(goal).Err()
	if err != nil {
		return model.Goal{}, err
	}

	return s.store.WithGoals(ctx, func(goals []model.Goal) (model.Goal, error) {
		if validation.HasConflict(goals, goal.Type, goal.Target, goal.Limit, "") {
			return model.Goal{}, ErrGoalConflict
		}
		goal.ID = ""
		return goal, nil
	})
}

func (s *GoalService) Update(ctx context.Context, id string, goal model.Goal) (model.Goal, error) {
	goal.ID = id
	validation.NormalizeGoal(&goal)
	err := validation.ValidateGoal(goal).Err()
	if err != nil {
		return model.Goal{}, err
	}

	return s.store.WithGoals(ctx, func(goals []model.Goal) (model.Goal, error) {
		if !slices.ContainsFunc(goals, func(g model.Goal) bool { return g.ID == id }) {
			return model.Goal{}, store.ErrGoalNotFound
		}
		if validation.HasConflict(goals, goal.Type, goal.Target, goal.Limit, id) {
			return model.Goal{}, ErrGoalConflict
		}
		return goal, nil
	})
}

func (s *GoalService) Delete(ctx context.Context, id string) (model.Goal, error) {
	return s.store.DeleteGoal(ctx, id)
}

func (s *GoalService) ByID(id string) (model.Goal, error) {
	return s.store.Goal(id)
}

// List returns goals ordered total, category, app, then by target.
func (s *GoalService) List() []model.Goal {
	return sortGoals(s.store.Goals())
}

func sortGoals(goals []model.Goal) []model.Goal {
	slices.SortStableFunc(goals, func(a, b model.Goal) int {
		if c := cmp.Compare(model.GoalTypeRank(a.Type), model.GoalTypeRank(b.Type)); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})
	return goals
}
