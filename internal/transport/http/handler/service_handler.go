package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homeserve/internal/apperr"
	"homeserve/internal/domain"
	"homeserve/internal/service"
	resp "homeserve/internal/transport/http/response"
)

type ServiceHandler struct {
	catalog *service.CatalogService
	reviews *service.ReviewService
}

func NewServiceHandler(catalog *service.CatalogService, reviews *service.ReviewService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, reviews: reviews}
}

func (h *ServiceHandler) Mount(public, authed *gin.RouterGroup) {
	public.GET("/services", h.search)
	public.GET("/services/:id", h.get)
	authed.POST("/services", h.create)
	authed.PATCH("/services/:id", h.update)
	authed.DELETE("/services/:id", h.delete)
	authed.POST("/services/:id/reviews", h.submitReview)
}

type searchPage struct {
	Items []domain.ServiceSummary `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

func (h *ServiceHandler) search(c *gin.Context) {
	page := atoiDefault(c.Query("page"), 1)
	limit := atoiDefault(c.Query("limit"), 20)
	rows, total, err := h.catalog.Search(domain.ServiceSearch{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		resp.Err(c, err)
		return
	}
	if rows == nil {
		rows = []domain.ServiceSummary{}
	}
	c.JSON(http.StatusOK, searchPage{Items: rows, Total: total, Page: page, Limit: limit})
}

func (h *ServiceHandler) get(c *gin.Context) {
	d, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ServiceHandler) create(c *gin.Context) {
	var in service.CreateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	svc, err := h.catalog.Create(callerFrom(c), in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) update(c *gin.Context) {
	var patch domain.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	svc, err := h.catalog.Update(c.Request.Context(), callerFrom(c), c.Param("id"), patch)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		resp.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) submitReview(c *gin.Context) {
	var in service.SubmitReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, apperr.Validation(err.Error()))
		return
	}
	rev, err := h.reviews.Submit(c.Request.Context(), callerFrom(c), c.Param("id"), in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
