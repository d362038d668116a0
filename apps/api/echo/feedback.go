package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hosteldesk/core/feedback"
)

func (s *server) registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	fg := g.Group("/feedback", jwt)

	fg.POST("", s.submitFeedback)
	fg.GET("", s.queryFeedback, adminMiddleware())
	fg.GET("/:id", s.retrieveFeedback, adminMiddleware())
	fg.PUT("/:id/read", s.markFeedbackRead, adminMiddleware())
	fg.PUT("/:id/review", s.reviewFeedback, adminMiddleware())
	fg.PUT("/:id/reply", s.replyFeedback, adminMiddleware())
}

// Handlers

func (s *server) submitFeedback(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}

	// attribution defaults to the logged in parent
	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if data.ParentName == "" {
		data.ParentName = ctxUsr.Name
	}
	if data.ParentEmail == "" {
		data.ParentEmail = ctxUsr.Email
	}
	if data.Relationship == "" {
		data.Relationship = ctxUsr.Relationship
	}

	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	fb, err := s.opts.FeedbackSvc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (s *server) queryFeedback(ctx echo.Context) error {
	filter := new(feedback.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []feedback.ParentFeedback{})
	}

	fbs, err := s.opts.FeedbackSvc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	if fbs == nil {
		fbs = []feedback.ParentFeedback{}
	}
	return ctx.JSON(http.StatusOK, fbs)
}

func (s *server) retrieveFeedback(ctx echo.Context) error {
	fb, err := s.opts.FeedbackSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding feedback by ID")
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (s *server) markFeedbackRead(ctx echo.Context) error {
	fb, err := s.opts.FeedbackSvc.MarkRead(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking feedback read")
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (s *server) reviewFeedback(ctx echo.Context) error {
	fb, err := s.opts.FeedbackSvc.Review(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "reviewing feedback")
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (s *server) replyFeedback(ctx echo.Context) error {
	var data feedback.Reply
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Reply")
	}
	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	fb, err := s.opts.FeedbackSvc.Reply(ctx.Request().Context(), ctx.Param("id"), data.Reply)
	if err != nil {
		return errors.Wrap(err, "replying to feedback")
	}
	return ctx.JSON(http.StatusOK, fb)
}
