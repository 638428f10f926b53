package api

import (
	"net/http"
	"strings"

	"github.com/p-shah256/bridge/internal/pricing"
	"github.com/p-shah256/bridge/pkg/errors"
)

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, pricing.Tiers())
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		TierID string `json:"tierId"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		s.respondError(w, r, errors.ErrBadRequest("User ID is required"))
		return
	}

	order, err := s.orders.Order(r.Context(), req.UserID, req.TierID)
	if err != nil {
		s.fail(w, r, err, profileNotFound)
		return
	}
	RespondWithJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.Orders(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status    string `json:"status"`
		PaymentID string `json:"paymentId"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}

	order, err := s.orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status, req.PaymentID)
	if err != nil {
		s.fail(w, r, err, "Order not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, order)
}
