package feedback

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hosteldesk/core"
)

var ErrNotFound = errors.New("feedback not found")

type (
	Repository interface {
		CreateFeedback(ctx context.Context, fb ParentFeedback) (ParentFeedback, error)
		// QueryAllFeedback returns all entries, newest first.
		QueryAllFeedback(ctx context.Context) ([]ParentFeedback, error)
		GetFeedbackByID(ctx context.Context, id string) (ParentFeedback, error)
		UpdateFeedback(ctx context.Context, fb ParentFeedback) (ParentFeedback, error)
	}

	ServiceInterface interface {
		Submit(ctx context.Context, nf NewFeedback) (ParentFeedback, error)
		QueryAll(ctx context.Context) ([]ParentFeedback, error)
		GetByID(ctx context.Context, id string) (ParentFeedback, error)
		Filter(ctx context.Context, filter QueryFilter) ([]ParentFeedback, error)
		MarkRead(ctx context.Context, id string) (ParentFeedback, error)
		Review(ctx context.Context, id string) (ParentFeedback, error)
		Reply(ctx context.Context, id, reply string) (ParentFeedback, error)
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

// Submit records a parent's feedback. Status is fixed to `pending` and the
// entry starts unread.
func (svc *Service) Submit(ctx context.Context, nf NewFeedback) (ParentFeedback, error) {
	fb := ParentFeedback{
		ParentName:     nf.ParentName,
		ParentEmail:    nf.ParentEmail,
		Relationship:   nf.Relationship,
		ComplaintID:    nf.ComplaintID,
		ComplaintTitle: nf.ComplaintTitle,
		StudentName:    nf.StudentName,
		Type:           nf.Type,
		Message:        nf.Message,
		Priority:       nf.Priority,
		Status:         StatusPending,
		SubmittedAt:    time.Now().UTC(),
	}
	fb, err := svc.repo.CreateFeedback(ctx, fb)
	if err != nil {
		return ParentFeedback{}, errors.Wrap(err, "creating feedback")
	}
	return fb, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]ParentFeedback, error) {
	return svc.repo.QueryAllFeedback(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (ParentFeedback, error) {
	return svc.repo.GetFeedbackByID(ctx, id)
}

// Filter returns the entries matching all set predicates of `filter`,
// newest first.
func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]ParentFeedback, error) {
	filter.Clean()
	all, err := svc.repo.QueryAllFeedback(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return all, nil
	}

	search := strings.ToLower(filter.Search)
	matched := make([]ParentFeedback, 0, len(all))
	for _, fb := range all {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(fb.ParentName), search) ||
			strings.Contains(strings.ToLower(fb.ParentEmail), search) ||
			strings.Contains(strings.ToLower(fb.StudentName), search) ||
			strings.Contains(strings.ToLower(fb.Message), search)

		matchesType := filter.Type == "" || fb.Type == filter.Type
		matchesStatus := filter.Status == "" || fb.Status == filter.Status
		matchesUnread := filter.Unread == nil || fb.IsRead != *filter.Unread

		if matchesSearch && matchesType && matchesStatus && matchesUnread {
			matched = append(matched, fb)
		}
	}
	return matched, nil
}

// MarkRead flags an entry as read without changing its workflow status.
func (svc *Service) MarkRead(ctx context.Context, id string) (ParentFeedback, error) {
	fb, err := svc.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return ParentFeedback{}, err
	}
	if fb.IsRead {
		return fb, nil
	}
	fb.IsRead = true
	return svc.repo.UpdateFeedback(ctx, fb)
}

// Review transitions an entry to `reviewed` without responding.
func (svc *Service) Review(ctx context.Context, id string) (ParentFeedback, error) {
	fb, err := svc.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return ParentFeedback{}, err
	}
	fb.Status = StatusReviewed
	fb.IsRead = true
	return svc.repo.UpdateFeedback(ctx, fb)
}

// Reply records the admin response, transitions the entry to `responded` and
// emails the parent. Unknown ids fail with ErrNotFound.
func (svc *Service) Reply(ctx context.Context, id, reply string) (ParentFeedback, error) {
	fb, err := svc.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return ParentFeedback{}, err
	}
	fb.AdminReply = reply
	fb.Status = StatusResponded
	fb.IsRead = true
	fb.RepliedAt = time.Now().UTC()
	fb, err = svc.repo.UpdateFeedback(ctx, fb)
	if err != nil {
		return ParentFeedback{}, err
	}

	svc.notifyParent(fb)
	return fb, nil
}

func (svc *Service) notifyParent(fb ParentFeedback) {
	body := fmt.Sprintf(
		"Dear %s,\n\nThe hostel administration has responded to your feedback:\n\n%s\n\n"+
			"Your original message:\n%s",
		fb.ParentName, fb.AdminReply, fb.Message,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: fb.ParentName, Address: fb.ParentEmail}},
		Subject: "Response to your feedback",
		BodyStr: body,
	})
}
