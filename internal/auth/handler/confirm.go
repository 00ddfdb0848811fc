package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type confirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.registrar.ConfirmSignUp(c.Request.Context(), req.Email, req.Code); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}
