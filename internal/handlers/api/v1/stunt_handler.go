package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/orchestrators/stunt"
)

// HeaderTotalCount reports the catalog size before filtering
const HeaderTotalCount = "X-Total-Count"

// StuntHandlerConfig holds dependencies for the stunt handler
type StuntHandlerConfig struct {
	StuntService stunt.Service
}

// Validate ensures all required dependencies are present
func (c *StuntHandlerConfig) Validate() error {
	if c == nil || c.StuntService == nil {
		return errors.InvalidArgument("stunt service is required")
	}
	return nil
}

// StuntHandler serves the stunt catalog endpoints
type StuntHandler struct {
	stuntService stunt.Service
}

// NewStuntHandler creates a new stunt handler with the given configuration
func NewStuntHandler(cfg *StuntHandlerConfig) (*StuntHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &StuntHandler{
		stuntService: cfg.StuntService,
	}, nil
}

// StuntRequest is the body of create and update calls. Cost accepts a JSON
// number or string. On PATCH a nil field is left unchanged.
type StuntRequest struct {
	Name        *string        `json:"name"`
	Cost        *entities.Cost `json:"cost"`
	Category    *string        `json:"category"`
	Description *string        `json:"description"`
	Setting     *string        `json:"setting"`
}

// FacetsResponse lists the values available to the stunt filters
type FacetsResponse struct {
	Categories []string `json:"categories"`
	Settings   []string `json:"settings"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

func stuntID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid stunt id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

func bindStunt(c *gin.Context) (*StuntRequest, bool) {
	var req StuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid stunt body: "+err.Error())
		return nil, false
	}
	return &req, true
}

// queryList collects a repeatable parameter. Values are taken whole, so a
// category containing a comma is matched as written.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseCriteria(c *gin.Context) (stunt.Criteria, error) {
	criteria := stunt.Criteria{
		Categories: queryList(c, "category"),
		Settings:   queryList(c, "setting"),
		Search:     c.Query("search"),
	}

	if raw := strings.TrimSpace(c.Query("cost_max")); raw != "" {
		ceiling, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, errors.InvalidArgumentf("cost_max must be an integer, got %q", raw).
				WithMeta("validation_errors", map[string][]string{"cost_max": {"must be an integer"}})
		}
		criteria.CostCeiling = &ceiling
	}

	return criteria, nil
}

// ListStunts handles GET /api/stunts
func (h *StuntHandler) ListStunts(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	output, err := h.stuntService.ListStunts(c.Request.Context(), &stunt.ListStuntsInput{Criteria: criteria})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(HeaderTotalCount, strconv.Itoa(output.Total))
	c.JSON(http.StatusOK, output.Stunts)
}

// GetFacets handles GET /api/stunts/facets
func (h *StuntHandler) GetFacets(c *gin.Context) {
	output, err := h.stuntService.GetFacets(c.Request.Context(), &stunt.GetFacetsInput{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FacetsResponse{
		Categories: output.Categories,
		Settings:   output.Settings,
	})
}

// GetStunt handles GET /api/stunts/:id
func (h *StuntHandler) GetStunt(c *gin.Context) {
	id, ok := stuntID(c)
	if !ok {
		return
	}

	output, err := h.stuntService.GetStunt(c.Request.Context(), &stunt.GetStuntInput{ID: id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Stunt)
}

// CreateStunt handles POST /api/stunts
func (h *StuntHandler) CreateStunt(c *gin.Context) {
	req, ok := bindStunt(c)
	if !ok {
		return
	}

	input := &stunt.CreateStuntInput{
		Name:        deref(req.Name),
		Category:    deref(req.Category),
		Description: deref(req.Description),
		Setting:     req.Setting,
	}
	if req.Cost != nil {
		input.Cost = *req.Cost
	}

	output, err := h.stuntService.CreateStunt(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output.Stunt)
}

// ReplaceStunt handles PUT /api/stunts/:id. Every field is replaced; an
// absent setting makes the stunt Universal.
func (h *StuntHandler) ReplaceStunt(c *gin.Context) {
	id, ok := stuntID(c)
	if !ok {
		return
	}
	req, ok := bindStunt(c)
	if !ok {
		return
	}

	cost := entities.Cost("")
	if req.Cost != nil {
		cost = *req.Cost
	}
	setting := deref(req.Setting)

	h.update(c, &stunt.UpdateStuntInput{
		ID:          id,
		Name:        ptr(deref(req.Name)),
		Cost:        &cost,
		Category:    ptr(deref(req.Category)),
		Description: ptr(deref(req.Description)),
		Setting:     &setting,
	})
}

// PatchStunt handles PATCH /api/stunts/:id. Only the fields present are
// changed; send "Universal" or "" as the setting to clear it.
func (h *StuntHandler) PatchStunt(c *gin.Context) {
	id, ok := stuntID(c)
	if !ok {
		return
	}
	req, ok := bindStunt(c)
	if !ok {
		return
	}

	h.update(c, &stunt.UpdateStuntInput{
		ID:          id,
		Name:        req.Name,
		Cost:        req.Cost,
		Category:    req.Category,
		Description: req.Description,
		Setting:     req.Setting,
	})
}

func (h *StuntHandler) update(c *gin.Context, input *stunt.UpdateStuntInput) {
	output, err := h.stuntService.UpdateStunt(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Stunt)
}

// DeleteStunt handles DELETE /api/stunts/:id
func (h *StuntHandler) DeleteStunt(c *gin.Context) {
	id, ok := stuntID(c)
	if !ok {
		return
	}

	if _, err := h.stuntService.DeleteStunt(c.Request.Context(), &stunt.DeleteStuntInput{ID: id}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Stunt deleted successfully"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr[T any](v T) *T {
	return &v
}
