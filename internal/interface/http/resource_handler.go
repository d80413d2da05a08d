package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/relief-directory/internal/application"
	"github.com/oksasatya/relief-directory/internal/interface/middleware"
	"github.com/oksasatya/relief-directory/pkg/response"
)

type ResourceHandler struct {
	Svc    *application.ResourceService
	Logger *logrus.Logger
}

func NewResourceHandler(svc *application.ResourceService, logger *logrus.Logger) *ResourceHandler {
	return &ResourceHandler{Svc: svc, Logger: logger}
}

// lat and lng accept numbers or numeric strings; nil means the key was absent
type submitRequest struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Lat         any    `json:"lat"`
	Lng         any    `json:"lng"`
}

type submitResponse struct {
	Message    string `json:"message"`
	ResourceID string `json:"resourceId"`
}

// Create POST /resources (session required)
func (h *ResourceHandler) Create(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required location or resource data.")
		return
	}
	id, err := h.Svc.Submit(c.Request.Context(), middleware.Identity(c), application.SubmitInput{
		Type:        req.Type,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
	}, requestMeta(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, submitResponse{
		Message:    "Resource successfully submitted and is pending review!",
		ResourceID: id,
	})
}

// List GET /resources?type=<filter|all> returns a bare JSON array
func (h *ResourceHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
