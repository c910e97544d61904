package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horizon/horizon-app/internal/domain"
	"horizon/horizon-app/internal/repository"
)

// In-memory repository fakes for service tests.

type fakeGoalRepo struct {
	goals map[primitive.ObjectID]*domain.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[primitive.ObjectID]*domain.Goal)}
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	goal.ID = primitive.NewObjectID()
	stored := *goal
	r.goals[goal.ID] = &stored
	return goal.ID, nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGoalRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	var result []domain.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *domain.Goal) error {
	g, ok := r.goals[goal.ID]
	if !ok || g.UserID != goal.UserID {
		return repository.ErrNotFound
	}
	progress := g.CurrentProgress
	stored := *goal
	stored.CurrentProgress = progress
	r.goals[goal.ID] = &stored
	return nil
}

func (r *fakeGoalRepo) UpdateProgress(_ context.Context, id, userID primitive.ObjectID, progress float64) error {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return repository.ErrNotFound
	}
	g.CurrentProgress = progress
	return nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

type fakeActivityRepo struct {
	logs []domain.ActivityLog
}

func (r *fakeActivityRepo) Create(_ context.Context, log *domain.ActivityLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *fakeActivityRepo) GetByUserAndWindow(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ActivityLog, error) {
	var result []domain.ActivityLog
	for _, l := range r.logs {
		if l.UserID == userID && !l.LoggedAt.Before(from) && !l.LoggedAt.After(to) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeActivityRepo) GetByUserSince(_ context.Context, userID primitive.ObjectID, since time.Time) ([]domain.ActivityLog, error) {
	var result []domain.ActivityLog
	for _, l := range r.logs {
		if l.UserID == userID && !l.LoggedAt.Before(since) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i, l := range r.logs {
		if l.ID == id && l.UserID == userID {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePersonRepo struct {
	people map[primitive.ObjectID]*domain.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{people: make(map[primitive.ObjectID]*domain.Person)}
}

func (r *fakePersonRepo) Create(_ context.Context, person *domain.Person) (primitive.ObjectID, error) {
	person.ID = primitive.NewObjectID()
	stored := *person
	r.people[person.ID] = &stored
	return person.ID, nil
}

func (r *fakePersonRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Person, error) {
	p, ok := r.people[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePersonRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Person, error) {
	var result []domain.Person
	for _, p := range r.people {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakePersonRepo) Update(_ context.Context, person *domain.Person) error {
	p, ok := r.people[person.ID]
	if !ok || p.UserID != person.UserID {
		return repository.ErrNotFound
	}
	stored := *person
	r.people[person.ID] = &stored
	return nil
}

func (r *fakePersonRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	p, ok := r.people[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.people, id)
	return nil
}

func (r *fakePersonRepo) TouchQualityTime(_ context.Context, userID primitive.ObjectID, personIDs []primitive.ObjectID, at time.Time) error {
	for _, id := range personIDs {
		if p, ok := r.people[id]; ok && p.UserID == userID {
			stamp := at
			p.LastQualityTime = &stamp
		}
	}
	return nil
}

func (r *fakePersonRepo) SetAvatarKey(_ context.Context, id, userID primitive.ObjectID, objectKey string) error {
	p, ok := r.people[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	p.AvatarObjectKey = objectKey
	return nil
}

type fakeDateRepo struct {
	dates map[primitive.ObjectID]*domain.ImportantDate
}

func newFakeDateRepo() *fakeDateRepo {
	return &fakeDateRepo{dates: make(map[primitive.ObjectID]*domain.ImportantDate)}
}

func (r *fakeDateRepo) Create(_ context.Context, date *domain.ImportantDate) (primitive.ObjectID, error) {
	date.ID = primitive.NewObjectID()
	stored := *date
	r.dates[date.ID] = &stored
	return date.ID, nil
}

func (r *fakeDateRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.ImportantDate, error) {
	d, ok := r.dates[id]
	if !ok || d.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDateRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.ImportantDate, error) {
	var result []domain.ImportantDate
	for _, d := range r.dates {
		if d.UserID == userID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (r *fakeDateRepo) GetByPersonID(_ context.Context, personID, userID primitive.ObjectID) ([]domain.ImportantDate, error) {
	var result []domain.ImportantDate
	for _, d := range r.dates {
		if d.UserID == userID && d.PersonID != nil && *d.PersonID == personID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (r *fakeDateRepo) Update(_ context.Context, date *domain.ImportantDate) error {
	d, ok := r.dates[date.ID]
	if !ok || d.UserID != date.UserID {
		return repository.ErrNotFound
	}
	stored := *date
	r.dates[date.ID] = &stored
	return nil
}

func (r *fakeDateRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	d, ok := r.dates[id]
	if !ok || d.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.dates, id)
	return nil
}

func (r *fakeDateRepo) DeleteByPersonID(_ context.Context, personID, userID primitive.ObjectID) error {
	for id, d := range r.dates {
		if d.UserID == userID && d.PersonID != nil && *d.PersonID == personID {
			delete(r.dates, id)
		}
	}
	return nil
}
