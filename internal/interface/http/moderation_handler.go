package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/relief-directory/internal/application"
	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/internal/interface/middleware"
	"github.com/oksasatya/relief-directory/pkg/response"
	"github.com/oksasatya/relief-directory/pkg/validation"
)

type ModerationHandler struct {
	Svc    *application.ResourceService
	Logger *logrus.Logger
}

func NewModerationHandler(svc *application.ResourceService, logger *logrus.Logger) *ModerationHandler {
	return &ModerationHandler{Svc: svc, Logger: logger}
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required,resourcestatus"`
}

// moderationResource is the full record shown to moderators only
type moderationResource struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Status      string    `json:"status"`
	SubmittedBy string    `json:"submittedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toModerationResource(r *entity.Resource) moderationResource {
	return moderationResource{
		ID:          r.ID,
		Type:        string(r.Type),
		Name:        r.Name,
		Address:     r.Address,
		Description: r.Description,
		Lat:         r.Location.Lat,
		Lng:         r.Location.Lng,
		Status:      string(r.Status),
		SubmittedBy: r.SubmittedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// List GET /moderation/resources?status=pending
func (h *ModerationHandler) List(c *gin.Context) {
	items, err := h.Svc.ListForModeration(c.Request.Context(), middleware.Identity(c), c.Query("status"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]moderationResource, 0, len(items))
	for i := range items {
		out = append(out, toModerationResource(&items[i]))
	}
	response.JSON(c, http.StatusOK, out)
}

// SetStatus PATCH /moderation/resources/:id
func (h *ModerationHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	res, err := h.Svc.SetStatus(c.Request.Context(), middleware.Identity(c), c.Param("id"), req.Status, requestMeta(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toModerationResource(res))
}
