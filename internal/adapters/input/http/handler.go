package http

import (
	"errors"

	"chat-relay/internal/domain"
	"chat-relay/internal/ports/input"
	"chat-relay/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	srv       input.ConversationService
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.ConversationService) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		validator: validator.New(),
	}
}

// Register mounts the conversation routes on router
func (hdl *HTTPHandler) Register(router fiber.Router) {
	sessions := router.Group("/sessions")
	{
		sessions.Post("/", hdl.StartSession)
		sessions.Get("/:id", hdl.GetSession)
		sessions.Post("/:id/identity", hdl.AcceptIdentity)
		sessions.Post("/:id/messages", hdl.SubmitMessage)
		sessions.Post("/:id/reset", hdl.ResetSession)
	}
}

// HealthCheck func
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.srv.Health(c.UserContext()); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ResponseBody{Status: ServiceUnavailable})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// StartSession godoc
// @Summary Start session
// @Description Opens a new conversation awaiting an email address
// @Tags Session
// @Produce json
// @Success 201 {object} ResponseBody{data=SessionResponse}
// @Router /v1/api/sessions [post]
func (hdl *HTTPHandler) StartSession(c *fiber.Ctx) error {
	view, err := hdl.srv.StartSession(c.UserContext())
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ResponseBody{Status: Created, Data: toSessionResponse(view)})
}

// GetSession godoc
// @Summary Get session
// @Description Returns the transcript, busy flag and last error notice
// @Tags Session
// @Produce json
// @param id path string true "session id"
// @Success 200 {object} ResponseBody{data=SessionResponse}
// @Failure 404 {object} ResponseBody
// @Router /v1/api/sessions/{id} [get]
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	view, err := hdl.srv.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toSessionResponse(view)})
}

// AcceptIdentity godoc
// @Summary Submit email
// @Description Passes the identity gate; chat input is enabled afterwards
// @Tags Session
// @Accept application/json
// @Produce json
// @param id path string true "session id"
// @param IdentityRequest body IdentityRequest true "IdentityRequest"
// @Success 200 {object} ResponseBody{data=SessionResponse}
// @Failure 400 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 409 {object} ResponseBody
// @Router /v1/api/sessions/{id}/identity [post]
func (hdl *HTTPHandler) AcceptIdentity(c *fiber.Ctx) error {
	var request IdentityRequest
	if msg := hdl.parse(c, &request); msg != nil {
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	view, err := hdl.srv.AcceptIdentity(c.UserContext(), c.Params("id"), request.Email)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toSessionResponse(view)})
}

// SubmitMessage godoc
// @Summary Send message
// @Description Relays one message to the workflow and returns the reply.
// @Description A message sent while another is in flight is ignored.
// @Tags Session
// @Accept application/json
// @Produce json
// @param id path string true "session id"
// @param MessageRequest body MessageRequest true "MessageRequest"
// @Success 200 {object} ResponseBody{data=MessageResponse}
// @Failure 400 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 409 {object} ResponseBody
// @Router /v1/api/sessions/{id}/messages [post]
func (hdl *HTTPHandler) SubmitMessage(c *fiber.Ctx) error {
	var request MessageRequest
	if msg := hdl.parse(c, &request); msg != nil {
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	result, err := hdl.srv.SubmitMessage(c.UserContext(), c.Params("id"), request.Message)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toMessageResponse(result)})
}

// ResetSession godoc
// @Summary New chat
// @Description Replaces the session with a new one awaiting an email address
// @Tags Session
// @Produce json
// @param id path string true "session id"
// @Success 200 {object} ResponseBody{data=SessionResponse}
// @Failure 404 {object} ResponseBody
// @Router /v1/api/sessions/{id}/reset [post]
func (hdl *HTTPHandler) ResetSession(c *fiber.Ctx) error {
	view, err := hdl.srv.ResetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toSessionResponse(view)})
}

// parse decodes and validates the body; a non-nil result is the 400 response to send
func (hdl *HTTPHandler) parse(c *fiber.Ctx, request interface{}) *ResponseBody {
	if err := c.BodyParser(request); err != nil {
		logrus.Errorln(err)
		return &ResponseBody{Status: BadRequest}
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = validator.Messages(err)
		return &msg
	}
	return nil
}

// errorResponse maps use case errors onto HTTP statuses
func (hdl *HTTPHandler) errorResponse(c *fiber.Ctx, err error) error {
	var status Status
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = BadRequest.withMessage(err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		status = NotFound
	case errors.Is(err, domain.ErrInvalidState):
		status = Conflict.withMessage(err.Error())
	default:
		logrus.Errorln(err)
		status = InternalServerError
	}
	return c.Status(status.Code).JSON(ResponseBody{Status: status})
}
