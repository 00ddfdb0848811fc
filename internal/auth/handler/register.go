package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type codeDeliveryResponse struct {
	Destination   string `json:"destination"`
	Medium        string `json:"medium"`
	AttributeName string `json:"attribute_name"`
}

type signUpResponse struct {
	Status        string                `json:"status"`
	UserSub       string                `json:"user_sub"`
	UserConfirmed bool                  `json:"user_confirmed"`
	CodeDelivery  *codeDeliveryResponse `json:"code_delivery,omitempty"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.registrar.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := signUpResponse{Status: "registered"}
	if res != nil {
		resp.UserSub = res.UserSub
		resp.UserConfirmed = res.UserConfirmed
		if d := res.Delivery; d != nil {
			resp.CodeDelivery = &codeDeliveryResponse{
				Destination:   d.Destination,
				Medium:        d.Medium,
				AttributeName: d.AttributeName,
			}
		}
	}

	c.JSON(http.StatusCreated, resp)
}
