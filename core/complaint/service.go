package complaint

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hosteldesk/core"
	"github.com/trezcool/hosteldesk/core/user"
)

var (
	// errors
	ErrNotFound   = errors.New("complaint not found")
	ErrNoIdentity = errors.New("student identity could not be resolved")
)

type (
	Repository interface {
		CreateComplaint(ctx context.Context, cpl Complaint) (Complaint, error)
		// QueryAllComplaints returns all complaints, newest first.
		QueryAllComplaints(ctx context.Context) ([]Complaint, error)
		GetComplaintByID(ctx context.Context, id string) (Complaint, error)
		// FilterComplaints applies AND operation on available QueryFilter
		// fields; results come back newest first.
		FilterComplaints(ctx context.Context, filter QueryFilter) ([]Complaint, error)
		QueryComplaintsByStudent(ctx context.Context, studentID string) ([]Complaint, error)
		UpdateComplaint(ctx context.Context, cpl Complaint) (Complaint, error)
		// DeleteComplaintsByID is idempotent: unknown ids are ignored.
		DeleteComplaintsByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewComplaint, owner user.User) (Complaint, error)
		QueryAll(ctx context.Context) ([]Complaint, error)
		GetByID(ctx context.Context, id string) (Complaint, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Complaint, error)
		ByStudent(ctx context.Context, studentID string) ([]Complaint, error)
		UpdateStatus(ctx context.Context, id string, us UpdateStatus) (Complaint, error)
		Reply(ctx context.Context, id, reply string) (Complaint, error)
		Delete(ctx context.Context, ids ...string) error
		Stats(ctx context.Context) (Stats, error)
		StatsFor(ctx context.Context, studentID string) (Stats, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Create submits a new complaint for `owner`. Status is fixed to `pending`;
// fails with ErrNoIdentity when no owner identity is resolvable.
func (svc *Service) Create(ctx context.Context, nc NewComplaint, owner user.User) (Complaint, error) {
	identity := owner.Identity()
	if identity == "" {
		return Complaint{}, ErrNoIdentity
	}

	now := time.Now().UTC()
	cpl := Complaint{
		Title:       nc.Title,
		Description: nc.Description,
		Category:    nc.Category,
		Priority:    nc.Priority,
		Status:      StatusPending,
		StudentID:   identity,
		StudentName: owner.Name,
		Room:        nc.Room,
		Block:       nc.Block,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	cpl, err := svc.repo.CreateComplaint(ctx, cpl)
	if err != nil {
		return Complaint{}, errors.Wrap(err, "creating complaint")
	}

	svc.notifyAdmin(cpl)
	return cpl, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Complaint, error) {
	return svc.repo.QueryAllComplaints(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Complaint, error) {
	return svc.repo.GetComplaintByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Complaint, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllComplaints(ctx)
	}
	return svc.repo.FilterComplaints(ctx, filter)
}

// ByStudent returns the owner partition for `studentID`, newest first.
func (svc *Service) ByStudent(ctx context.Context, studentID string) ([]Complaint, error) {
	if studentID == "" {
		return nil, ErrNoIdentity
	}
	return svc.repo.QueryComplaintsByStudent(ctx, studentID)
}

// UpdateStatus transitions a complaint's status; non-empty notes overwrite
// the admin reply slot. Unknown ids fail with ErrNotFound.
func (svc *Service) UpdateStatus(ctx context.Context, id string, us UpdateStatus) (Complaint, error) {
	cpl, err := svc.repo.GetComplaintByID(ctx, id)
	if err != nil {
		return Complaint{}, err
	}
	cpl.Status = us.Status
	if us.Notes != "" {
		cpl.AdminReply = us.Notes
	}
	cpl.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateComplaint(ctx, cpl)
}

// Reply sets the single admin reply slot. Unknown ids fail with ErrNotFound.
func (svc *Service) Reply(ctx context.Context, id, reply string) (Complaint, error) {
	cpl, err := svc.repo.GetComplaintByID(ctx, id)
	if err != nil {
		return Complaint{}, err
	}
	cpl.AdminReply = reply
	cpl.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateComplaint(ctx, cpl)
}

// Delete removes complaints; deleting an unknown id is a no-op.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteComplaintsByID(ctx, ids...)
}

func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	complaints, err := svc.repo.QueryAllComplaints(ctx)
	if err != nil {
		return Stats{}, err
	}
	return CalculateStats(complaints), nil
}

func (svc *Service) StatsFor(ctx context.Context, studentID string) (Stats, error) {
	complaints, err := svc.ByStudent(ctx, studentID)
	if err != nil {
		return Stats{}, err
	}
	return CalculateStats(complaints), nil
}

func (svc *Service) notifyAdmin(cpl Complaint) {
	if svc.conf.AdminEmail == "" {
		return
	}
	body := fmt.Sprintf(
		"A new complaint was submitted.\n\n"+
			"Title: %s\nCategory: %s\nPriority: %s\nRoom: %s, %s\nSubmitted by: %s\n\n%s",
		cpl.Title, cpl.Category, cpl.Priority, cpl.Room, cpl.Block, cpl.StudentName, cpl.Description,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: svc.conf.AdminEmail}},
		Subject: "New Complaint: " + cpl.Title,
		BodyStr: body,
	})
}
