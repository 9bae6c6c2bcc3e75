package application

import (
	"net/http"

	"github.com/icsbenin/candidature/internal"
)

// SubmitPath is the submission endpoint.
const SubmitPath = "/api/send-application"

// Handler exposes the submission endpoint.
type Handler struct {
	service *Service
	maxBody int64
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{service: svc, maxBody: MaxBodySize}
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.POST(SubmitPath, h.submit)
}

func (h *Handler) submit(c internal.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxBody)

	if err := h.service.Process(c, req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, internal.OK(MessageSent))
}
