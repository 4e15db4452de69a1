package handler

import (
	"net/http"

	"milhas-tracker/internal/model"
	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	members     *service.MemberService
	enrollments *service.EnrollmentService
}

func NewMemberHandler(members *service.MemberService, enrollments *service.EnrollmentService) *MemberHandler {
	return &MemberHandler{members: members, enrollments: enrollments}
}

// GET /api/users/:userId/members
func (h *MemberHandler) List(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	members, err := h.members.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// POST /api/users/:userId/members
func (h *MemberHandler) Create(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	m, err := h.members.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	m, err := h.members.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.members.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/members/:id/programs
func (h *MemberHandler) Programs(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	views, err := h.enrollments.ListForMember(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
