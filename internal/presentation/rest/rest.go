package rest

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Negosyo-Digital/platform-backend/internal/application"
	"github.com/Negosyo-Digital/platform-backend/internal/application/consts"
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Server struct {
	commands *application.Collection
	identity auth.IdentityProvider
}

func NewServer(commands *application.Collection) *Server {
	return &Server{commands: commands}
}

// RegisterRoutes wires every endpoint onto the app. The webhook and the
// template catalog are the only routes that work without a bearer token.
func (s *Server) RegisterRoutes(app *fiber.App) {
	app.Get("/templates", s.ListTemplates)
	app.Post("/payments/webhook", s.PaymentWebhook)

	app.Post("/creators", s.CreateCreator)
	app.Get("/creators/:id", s.GetCreator)
	app.Put("/creators/:id/status", s.UpdateCreatorStatus)

	app.Post("/submissions", s.CreateSubmission)
	app.Get("/submissions", s.ListSubmissions)
	app.Post("/submissions/mark-paid", s.BulkMarkPaid)
	app.Get("/submissions/:id", s.GetSubmission)
	app.Patch("/submissions/:id", s.UpdateSubmission)
	app.Post("/submissions/:id/submit", s.Submit)
	app.Post("/submissions/:id/review", s.MarkInReview)
	app.Post("/submissions/:id/approve", s.Approve)
	app.Post("/submissions/:id/reject", s.Reject)
	app.Post("/submissions/:id/transcribe", s.Transcribe)
	app.Post("/submissions/:id/extract-content", s.ExtractContent)
	app.Post("/submissions/:id/mark-paid", s.MarkPaid)
	app.Post("/submissions/:id/request-payout", s.RequestPayout)

	app.Post("/submissions/:id/website", s.GenerateWebsite)
	app.Get("/submissions/:id/website", s.GetWebsite)
	app.Put("/submissions/:id/website/content", s.UpdateWebsiteContent)
	app.Put("/submissions/:id/website/customizations", s.UpdateCustomizations)
	app.Post("/submissions/:id/website/publish", s.PublishSite)
	app.Post("/submissions/:id/website/unpublish", s.UnpublishSite)

	app.Post("/files", s.UploadFile)
	app.Post("/payments", s.CreatePayment)
}

func (s *Server) getIdentity(c *fiber.Ctx) (*auth.Identity, error) {
	header := c.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, errs.PermissionsError{Err: errors.New("missing bearer token")}
	}
	return s.identity.GetIdentity(token)
}

func pathID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errs.ValidationError{Err: errors.New("id must be a positive integer")}
	}
	return id, nil
}

// respondErr maps the typed application errors onto HTTP statuses.
func respondErr(c *fiber.Ctx, err error) error {
	var (
		validation  errs.ValidationError
		notFound    errs.NotFoundError
		conflict    errs.ConflictError
		permissions errs.PermissionsError
		upstream    errs.UpstreamError
	)
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		status = fiber.StatusBadRequest
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
	case errors.As(err, &conflict):
		status = fiber.StatusConflict
	case errors.As(err, &permissions):
		status = fiber.StatusForbidden
	case errors.As(err, &upstream):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error()})
}

func (s *Server) CreateCreator(c *fiber.Ctx) error {
	var req dto.CreateCreatorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	resp, err := s.commands.CreateCreator.Execute(c.Context(), &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) GetCreator(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	creatorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id must be a uuid"})
	}
	resp, err := s.commands.GetCreator.Query(c.Context(), creatorID, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UpdateCreatorStatus(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	creatorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id must be a uuid"})
	}
	var req dto.UpdateCreatorStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if err := s.commands.UpdateCreatorStatus.Execute(c.Context(), creatorID, req.NewStatus, identity); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) CreateSubmission(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	submissionID, err := s.commands.CreateSubmission.Execute(c.Context(), &req, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSubmissionResponse{SubmissionID: submissionID})
}

func (s *Server) ListSubmissions(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	var creatorFilter *uuid.UUID
	if v := c.Query("creatorId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "creatorId must be a uuid"})
		}
		creatorFilter = &id
	}
	var statusFilter *consts.SubmissionStatus
	if v := c.Query("status"); v != "" {
		status := consts.SubmissionStatus(v)
		statusFilter = &status
	}
	resp, err := s.commands.ListSubmissions.Query(c.Context(), creatorFilter, statusFilter, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) GetSubmission(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	resp, err := s.commands.GetSubmission.Query(c.Context(), id, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UpdateSubmission(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	var req dto.UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if err := s.commands.UpdateSubmission.Execute(c.Context(), id, &req, identity); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) Submit(c *fiber.Ctx) error {
	return s.transition(c, s.commands.Submit.Execute)
}

func (s *Server) MarkInReview(c *fiber.Ctx) error {
	return s.transition(c, s.commands.MarkInReview.Execute)
}

func (s *Server) Approve(c *fiber.Ctx) error {
	return s.transition(c, s.commands.Approve.Execute)
}

func (s *Server) Reject(c *fiber.Ctx) error {
	return s.transition(c, s.commands.Reject.Execute)
}

func (s *Server) RequestPayout(c *fiber.Ctx) error {
	return s.transition(c, s.commands.RequestPayout.Execute)
}

// transition factors the id-only lifecycle endpoints down to one shape.
func (s *Server) transition(c *fiber.Ctx, execute func(ctx context.Context, id uint64, identity *auth.Identity) error) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	if err := execute(c.Context(), id, identity); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) Transcribe(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	resp, err := s.commands.Transcribe.Execute(c.Context(), id, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) ExtractContent(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	resp, err := s.commands.ExtractContent.Execute(c.Context(), id, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) GenerateWebsite(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	req := dto.GenerateWebsiteRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}
	resp, err := s.commands.GenerateWebsite.Execute(c.Context(), id, &req, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) GetWebsite(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	includeHTML := c.QueryBool("includeHtml", false)
	resp, err := s.commands.GetWebsite.Query(c.Context(), id, includeHTML, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UpdateWebsiteContent(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	var req dto.UpdateWebsiteContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if err := s.commands.UpdateContent.Execute(c.Context(), id, &req, identity); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) UpdateCustomizations(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	var req dto.UpdateCustomizationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if err := s.commands.UpdateCustomizations.Execute(c.Context(), id, &req, identity); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) PublishSite(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	resp, err := s.commands.PublishSite.Execute(c.Context(), id, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UnpublishSite(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	resp, err := s.commands.UnpublishSite.Execute(c.Context(), id, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) MarkPaid(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondErr(c, err)
	}
	resp, err := s.commands.MarkPaid.Execute(c.Context(), id, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) BulkMarkPaid(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	var req dto.BulkMarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	resp, err := s.commands.BulkMarkPaid.Execute(c.Context(), &req, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UploadFile(c *fiber.Ctx) error {
	if _, err := s.getIdentity(c); err != nil {
		return respondErr(c, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	resp, err := s.commands.UploadFile.Execute(c.Context(), fileHeader)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) CreatePayment(c *fiber.Ctx) error {
	identity, err := s.getIdentity(c)
	if err != nil {
		return respondErr(c, err)
	}
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	resp, err := s.commands.Payment.CreatePayment(c.Context(), &req, identity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) PaymentWebhook(c *fiber.Ctx) error {
	if err := s.commands.Payment.Webhook(c.Context(), c.Body(), c.Get("Stripe-Signature")); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) ListTemplates(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(s.commands.ListTemplates.Query())
}
