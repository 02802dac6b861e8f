package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"crm-api/services"
)

type EnquiryController struct {
	enquiries *services.EnquiryService
	now       func() time.Time
}

func NewEnquiryController(enquiries *services.EnquiryService) *EnquiryController {
	return &EnquiryController{enquiries: enquiries, now: time.Now}
}

func (h *EnquiryController) Create(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.EnquiryInput
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.enquiries.Create(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": e})
}

// List returns the caller's enquiries, newest first. ?status= narrows the result.
func (h *EnquiryController) List(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	items, err := h.enquiries.ListByOwner(c.Request.Context(), uid, strings.TrimSpace(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "total": len(items)})
}

func (h *EnquiryController) Get(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.enquiries.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": e})
}

func (h *EnquiryController) Update(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.EnquiryPatch
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.enquiries.Update(c.Request.Context(), uid, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": e})
}

func (h *EnquiryController) Delete(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.enquiries.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Enquiry deleted successfully"})
}

// FollowUps lists the caller's open enquiries with a follow-up due today or overdue.
func (h *EnquiryController) FollowUps(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	items, err := h.enquiries.DueFollowUps(c.Request.Context(), uid, h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "total": len(items)})
}
