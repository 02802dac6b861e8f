package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-api/services"
)

// DirectoryController serves companies, lead sources and staff.
type DirectoryController struct {
	directory *services.DirectoryService
}

func NewDirectoryController(directory *services.DirectoryService) *DirectoryController {
	return &DirectoryController{directory: directory}
}

/* ==========================
   Companies
   ========================== */

func (h *DirectoryController) ListCompanies(c *gin.Context) {
	items, err := h.directory.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "total": len(items)})
}

func (h *DirectoryController) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.directory.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) CreateCompany(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.CompanyInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.directory.CreateCompany(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) UpdateCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CompanyInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.directory.UpdateCompany(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) DeleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.directory.DeleteCompany(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company deleted"})
}

/* ==========================
   Lead sources
   ========================== */

// ListLeadSources returns active sources unless ?all=true.
func (h *DirectoryController) ListLeadSources(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	items, err := h.directory.ListLeadSources(c.Request.Context(), !all)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "total": len(items)})
}

func (h *DirectoryController) GetLeadSource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.directory.GetLeadSource(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) CreateLeadSource(c *gin.Context) {
	var req services.LeadSourceInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.directory.CreateLeadSource(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) UpdateLeadSource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.LeadSourceInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.directory.UpdateLeadSource(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) DeleteLeadSource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.directory.DeleteLeadSource(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lead source deleted"})
}

/* ==========================
   Staff
   ========================== */

// ListStaff returns the caller's staff records, optionally for one ?company_id=.
func (h *DirectoryController) ListStaff(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	var companyID *uint
	if raw := c.Query("company_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid company_id"})
			return
		}
		id := uint(v)
		companyID = &id
	}

	items, err := h.directory.ListStaff(c.Request.Context(), uid, companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "total": len(items)})
}

func (h *DirectoryController) GetStaff(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.directory.GetStaff(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) CreateStaff(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.StaffInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.directory.CreateStaff(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) UpdateStaff(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.StaffInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.directory.UpdateStaff(c.Request.Context(), uid, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *DirectoryController) DeleteStaff(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.directory.DeleteStaff(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Staff deleted"})
}
