package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/hosteldesk/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *DB) *feedbackRepository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) query() []feedback.ParentFeedback {
	fbs := make([]feedback.ParentFeedback, 0, len(repo.db.table))
	for _, fb := range repo.db.table {
		fbs = append(fbs, *fb)
	}
	sort.Slice(fbs, func(i, j int) bool { return fbs[i].SubmittedAt.After(fbs[j].SubmittedAt) })
	return fbs
}

func (repo *feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.ParentFeedback) (feedback.ParentFeedback, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	fb.ID = uuid.New().String()
	repo.db.table[fb.ID] = &fb
	return fb, nil
}

func (repo *feedbackRepository) QueryAllFeedback(ctx context.Context) ([]feedback.ParentFeedback, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (feedback.ParentFeedback, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if fb, ok := repo.db.table[id]; ok {
		return *fb, nil
	}
	return feedback.ParentFeedback{}, feedback.ErrNotFound
}

func (repo *feedbackRepository) UpdateFeedback(ctx context.Context, fb feedback.ParentFeedback) (feedback.ParentFeedback, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[fb.ID]; !ok {
		return feedback.ParentFeedback{}, feedback.ErrNotFound
	}
	repo.db.table[fb.ID] = &fb
	return fb, nil
}
