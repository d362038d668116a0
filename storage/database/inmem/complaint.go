package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/hosteldesk/core/complaint"
)

type complaintRepository struct {
	db *complaintTable
}

var _ complaint.Repository = (*complaintRepository)(nil) // interface compliance check

func NewComplaintRepository(db *DB) *complaintRepository {
	return &complaintRepository{db: db.complaint}
}

// query returns the table contents, newest first.
func (repo *complaintRepository) query() []complaint.Complaint {
	complaints := make([]complaint.Complaint, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		complaints = append(complaints, *c)
	}
	sort.Slice(complaints, func(i, j int) bool {
		return complaints[i].SubmittedAt.After(complaints[j].SubmittedAt)
	})
	return complaints
}

func (repo *complaintRepository) CreateComplaint(ctx context.Context, cpl complaint.Complaint) (complaint.Complaint, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cpl.ID = uuid.New().String()
	repo.db.table[cpl.ID] = &cpl
	return cpl, nil
}

func (repo *complaintRepository) QueryAllComplaints(ctx context.Context) ([]complaint.Complaint, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *complaintRepository) GetComplaintByID(ctx context.Context, id string) (complaint.Complaint, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cpl, ok := repo.db.table[id]; ok {
		return *cpl, nil
	}
	return complaint.Complaint{}, complaint.ErrNotFound
}

func (repo *complaintRepository) FilterComplaints(ctx context.Context, filter complaint.QueryFilter) ([]complaint.Complaint, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return complaint.Filter(repo.query(), filter), nil
}

func (repo *complaintRepository) QueryComplaintsByStudent(ctx context.Context, studentID string) ([]complaint.Complaint, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	owned := make([]complaint.Complaint, 0)
	for _, cpl := range repo.query() {
		if cpl.StudentID == studentID {
			owned = append(owned, cpl)
		}
	}
	return owned, nil
}

func (repo *complaintRepository) UpdateComplaint(ctx context.Context, cpl complaint.Complaint) (complaint.Complaint, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cpl.ID]; !ok {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	repo.db.table[cpl.ID] = &cpl
	return cpl, nil
}

func (repo *complaintRepository) DeleteComplaintsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
