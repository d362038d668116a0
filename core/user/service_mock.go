package user

import (
	"time"

	"github.com/trezcool/hosteldesk/core"
)

// NewServiceMock returns a Service wired for tests: fixed secrets,
// no config file lookup.
func NewServiceMock(repo Repository, mailSvc core.EmailService) *Service {
	secretKey = []byte("secret")
	passwordResetTimeoutDelta = 3 * 24 * time.Hour
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf: &core.Config{
			AppName:         "Hosteldesk",
			FrontendBaseURL: "http://localhost:3000",
			AdminEmail:      "admin@hosteldesk.local",
		},
	}
}
