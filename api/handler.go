// Package api - HTTP handlers.
// Handlers bind input, delegate to the admission controller, and
// serialize output. All pricing and capacity logic lives in core.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cloud-portal/core/admission"
	"cloud-portal/internal/errors"
)

// handleHealth handles GET /api/health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /api/version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     s.version,
		"engine":      "cloud-portal",
		"api_version": "v1",
	})
}

// handleTariffs handles GET /api/tariffs
func (s *Server) handleTariffs(c *gin.Context) {
	tariffs, err := s.controller.Tariffs(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tariffsResponse(tariffs))
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	usage, err := s.controller.Usage(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	tariffs, err := s.controller.Tariffs(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		UsedComputationInstances: usage.Instances,
		MaxInstances:             tariffs.Computation.MaxInstances,
		UsedStorageTb:            usage.StorageTb,
		MaxGlobalStorageTb:       tariffs.Storage.MaxGlobalTb,
		UsedDataGb:               usage.DataGb,
	})
}

// handleQuote handles POST /api/quote
func (s *Server) handleQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidInput("malformed quote request"))
		return
	}

	quote, err := s.controller.Quote(c.Request.Context(), admission.OrderRequest{
		RAMGb:     req.RAMGb,
		StorageTb: req.StorageTb,
		DataGb:    req.DataGb,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quoteResponse(quote))
}

// handleSubmitOrder handles POST /api/orders
func (s *Server) handleSubmitOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidInput("malformed order request"))
		return
	}

	user := currentUser(c)
	order, err := s.controller.SubmitOrder(c.Request.Context(), user.ID, admission.OrderRequest{
		RAMGb:     req.RAMGb,
		StorageTb: req.StorageTb,
		DataGb:    req.DataGb,
		Months:    req.Months,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, orderResponse(order))
}

// handleListOrders handles GET /api/orders
func (s *Server) handleListOrders(c *gin.Context) {
	user := currentUser(c)

	orders, err := s.controller.ListOrders(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out, "count": len(out)})
}

// handleCancelOrder handles DELETE /api/orders/:id
func (s *Server) handleCancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		abortWithError(c, errors.InvalidInput("order id must be a positive integer"))
		return
	}

	user := currentUser(c)
	if err := s.controller.CancelOrder(c.Request.Context(), user.ID, uint(orderID)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
