package handler

import (
	"deposit-address-service/internal/adapter/http/dto"
	"deposit-address-service/internal/adapter/http/middleware"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/pkg/apperror"
	"deposit-address-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// DepositAddressHandler serves the member deposit address lookup.
type DepositAddressHandler struct {
	svc ports.DepositAddressService
}

// NewDepositAddressHandler creates a new DepositAddressHandler.
func NewDepositAddressHandler(svc ports.DepositAddressService) *DepositAddressHandler {
	return &DepositAddressHandler{svc: svc}
}

// Get handles GET /api/v1/account/deposit_address/:currency.
// 200 when the address exists, 202 while it is being generated.
func (h *DepositAddressHandler) Get(c *gin.Context) {
	uid, ok := middleware.MemberUID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var uri dto.DepositAddressURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation("invalid currency code"))
		return
	}

	view, err := h.svc.Lookup(c.Request.Context(), uid, uri.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := dto.DepositAddressResponse{
		Currency: view.Currency,
		Address:  view.Address,
		State:    view.State,
	}
	if view.State == ports.DepositAddressPending {
		response.Accepted(c, body)
		return
	}
	response.OK(c, body)
}
