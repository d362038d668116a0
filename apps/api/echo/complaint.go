package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hosteldesk/core/complaint"
)

func (s *server) registerComplaintAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	cg := g.Group("/complaints", jwt)

	cg.POST("", s.createComplaint)
	cg.GET("", s.queryComplaints)
	cg.GET("/stats", s.complaintStats)
	cg.GET("/:id", s.retrieveComplaint)
	cg.PUT("/:id/status", s.updateComplaintStatus, adminMiddleware())
	cg.PUT("/:id/reply", s.replyComplaint, adminMiddleware())
	cg.DELETE("/:id", s.destroyComplaint, adminMiddleware())
}

// ComplaintResponse decorates a complaint with its presentation attributes.
// Colors are derived on the way out and never stored.
type ComplaintResponse struct {
	complaint.Complaint
	StatusColor   string `json:"status_color"`
	PriorityColor string `json:"priority_color"`
	TimeAgo       string `json:"time_ago"`
}

func newComplaintResponse(cpl complaint.Complaint) ComplaintResponse {
	return ComplaintResponse{
		Complaint:     cpl,
		StatusColor:   complaint.StatusColor(cpl.Status),
		PriorityColor: complaint.PriorityColor(cpl.Priority),
		TimeAgo:       complaint.TimeAgo(cpl.SubmittedAt),
	}
}

func newComplaintResponses(complaints []complaint.Complaint) []ComplaintResponse {
	res := make([]ComplaintResponse, 0, len(complaints))
	for _, cpl := range complaints {
		res = append(res, newComplaintResponse(cpl))
	}
	return res
}

// Handlers

func (s *server) createComplaint(ctx echo.Context) error {
	var data complaint.NewComplaint
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComplaint")
	}
	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	cpl, err := s.opts.ComplaintSvc.Create(ctx.Request().Context(), data, ctxUsr)
	if err != nil {
		if errors.Cause(err) == complaint.ErrNoIdentity {
			return echo.NewHTTPError(http.StatusBadRequest, complaint.ErrNoIdentity.Error())
		}
		return errors.Wrap(err, "creating complaint")
	}
	return ctx.JSON(http.StatusCreated, newComplaintResponse(cpl))
}

// queryComplaints returns the full (filtered) list for admins and the owner
// partition for everyone else.
func (s *server) queryComplaints(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var complaints []complaint.Complaint
	if ctxUsr.IsAdmin() {
		filter := new(complaint.QueryFilter)
		if err := ctx.Bind(filter); err != nil {
			return ctx.JSON(http.StatusOK, []ComplaintResponse{})
		}
		complaints, err = s.opts.ComplaintSvc.Filter(ctx.Request().Context(), *filter)
	} else {
		complaints, err = s.opts.ComplaintSvc.ByStudent(ctx.Request().Context(), ctxUsr.Identity())
	}
	if err != nil {
		return errors.Wrap(err, "querying complaints")
	}
	return ctx.JSON(http.StatusOK, newComplaintResponses(complaints))
}

// complaintStats derives the counters over the caller's visible partition.
func (s *server) complaintStats(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var stats complaint.Stats
	if ctxUsr.IsAdmin() {
		stats, err = s.opts.ComplaintSvc.Stats(ctx.Request().Context())
	} else {
		stats, err = s.opts.ComplaintSvc.StatsFor(ctx.Request().Context(), ctxUsr.Identity())
	}
	if err != nil {
		return errors.Wrap(err, "computing complaint stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (s *server) retrieveComplaint(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	cpl, err := s.opts.ComplaintSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding complaint by ID")
	}
	// only the owner and admins may see a complaint
	if !ctxUsr.IsAdmin() && cpl.StudentID != ctxUsr.Identity() {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, newComplaintResponse(cpl))
}

func (s *server) updateComplaintStatus(ctx echo.Context) error {
	var data complaint.UpdateStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	cpl, err := s.opts.ComplaintSvc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating complaint status")
	}
	return ctx.JSON(http.StatusOK, newComplaintResponse(cpl))
}

func (s *server) replyComplaint(ctx echo.Context) error {
	var data complaint.Reply
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Reply")
	}
	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	cpl, err := s.opts.ComplaintSvc.Reply(ctx.Request().Context(), ctx.Param("id"), data.Reply)
	if err != nil {
		return errors.Wrap(err, "replying to complaint")
	}
	return ctx.JSON(http.StatusOK, newComplaintResponse(cpl))
}

// destroyComplaint is idempotent: deleting an unknown id is a no-op.
func (s *server) destroyComplaint(ctx echo.Context) error {
	if err := s.opts.ComplaintSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting complaint")
	}
	return ctx.NoContent(http.StatusNoContent)
}
