// Package api - Request/response contracts.
// Money is always rendered with 2 decimal places at this boundary;
// the core keeps full precision.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// QuoteRequest asks for a price without reserving capacity
type QuoteRequest struct {
	RAMGb     float64 `json:"ram_gb"`
	StorageTb float64 `json:"storage_tb"`
	DataGb    float64 `json:"data_gb"`
}

// QuoteResponse is a rendered quote
type QuoteResponse struct {
	Computation  string `json:"computation"`
	Storage      string `json:"storage"`
	DataTransfer string `json:"data_transfer"`
	Monthly      string `json:"monthly"`
	Currency     string `json:"currency"`
}

func quoteResponse(q *types.Quote) QuoteResponse {
	return QuoteResponse{
		Computation:  types.FormatMoney(q.Computation),
		Storage:      types.FormatMoney(q.Storage),
		DataTransfer: types.FormatMoney(q.DataTransfer),
		Monthly:      types.FormatMoney(q.Monthly),
		Currency:     q.Currency.String(),
	}
}

// OrderRequest submits an order for admission
type OrderRequest struct {
	RAMGb     float64 `json:"ram_gb"`
	StorageTb float64 `json:"storage_tb"`
	DataGb    float64 `json:"data_gb"`
	Months    int     `json:"months"`
}

// OrderResponse is a rendered order
type OrderResponse struct {
	OrderID    uint      `json:"order_id"`
	RAMGb      float64   `json:"ram_gb"`
	StorageTb  float64   `json:"storage_tb"`
	DataGb     float64   `json:"data_gb"`
	Months     int       `json:"months"`
	TotalPrice string    `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func orderResponse(o *types.Order) OrderResponse {
	return OrderResponse{
		OrderID:    o.ID,
		RAMGb:      o.RAMGb,
		StorageTb:  o.StorageTb,
		DataGb:     o.DataGb,
		Months:     o.Months,
		TotalPrice: types.FormatMoney(o.TotalPrice),
		CreatedAt:  o.CreatedAt,
		ExpiresAt:  o.ExpiresAt,
	}
}

// TariffsResponse renders the current offering for display
type TariffsResponse struct {
	Computation struct {
		MaxInstances int               `json:"max_instances"`
		Tiers        []RAMTierResponse `json:"tiers"`
	} `json:"computation"`
	Storage struct {
		PricePerTbMonth string  `json:"price_per_tb_month"`
		MinTbPerOrder   float64 `json:"min_tb_per_order"`
		MaxGlobalTb     float64 `json:"max_global_tb"`
	} `json:"storage"`
	DataTransfer struct {
		BasePrice       string  `json:"base_price"`
		BaseTierGb      float64 `json:"base_tier_gb"`
		Tier1Gb         float64 `json:"tier1_gb"`
		Tier1Multiplier float64 `json:"tier1_multiplier"`
		Tier2Multiplier float64 `json:"tier2_multiplier"`
		MaxGb           float64 `json:"max_gb"`
	} `json:"data_transfer"`
	Currency string `json:"currency"`
}

// RAMTierResponse is one rendered RAM tier
type RAMTierResponse struct {
	RAMGb        float64 `json:"ram_gb"`
	MonthlyPrice string  `json:"monthly_price"`
	MinStorageTb float64 `json:"min_storage_tb"`
}

func tariffsResponse(t *types.Tariffs) TariffsResponse {
	var resp TariffsResponse

	resp.Computation.MaxInstances = t.Computation.MaxInstances
	resp.Computation.Tiers = make([]RAMTierResponse, 0, len(t.Computation.Tiers))
	for _, tier := range t.Computation.Tiers {
		resp.Computation.Tiers = append(resp.Computation.Tiers, RAMTierResponse{
			RAMGb:        tier.SizeGb,
			MonthlyPrice: types.FormatMoney(tier.MonthlyPrice),
			MinStorageTb: tier.MinStorageTb,
		})
	}

	resp.Storage.PricePerTbMonth = types.FormatMoney(t.Storage.PricePerTbMonth)
	resp.Storage.MinTbPerOrder = t.Storage.MinTbPerOrder
	resp.Storage.MaxGlobalTb = t.Storage.MaxGlobalTb

	resp.DataTransfer.BasePrice = types.FormatMoney(t.DataTransfer.BasePrice)
	resp.DataTransfer.BaseTierGb = t.DataTransfer.BaseTierGb
	resp.DataTransfer.Tier1Gb = t.DataTransfer.Tier1Gb
	resp.DataTransfer.Tier1Multiplier = t.DataTransfer.Tier1Multiplier
	resp.DataTransfer.Tier2Multiplier = t.DataTransfer.Tier2Multiplier
	resp.DataTransfer.MaxGb = t.DataTransfer.MaxGb

	resp.Currency = t.Currency.String()
	return resp
}

// StatusResponse reports aggregate usage against the capacity pools
type StatusResponse struct {
	UsedComputationInstances int     `json:"used_computation_instances"`
	MaxInstances             int     `json:"max_instances"`
	UsedStorageTb            float64 `json:"used_storage_tb"`
	MaxGlobalStorageTb       float64 `json:"max_global_storage_tb"`
	UsedDataGb               float64 `json:"used_data_gb"`
}

// ErrorBody is the error envelope every failure uses
type ErrorBody struct {
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	} `json:"error"`
}

// statusFor maps each domain error kind to a fixed HTTP status.
// Kinds are never collapsed: the caller can tell exactly which
// resource or rule rejected the request.
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidRamSize,
		errors.TypeInsufficientStorage,
		errors.TypeDataCeilingExceeded,
		errors.TypeInvalidInput:
		return http.StatusUnprocessableEntity
	case errors.TypeNoComputationCapacity,
		errors.TypeStorageCapacityExceeded,
		errors.TypeCancellationWindowClosed:
		return http.StatusConflict
	case errors.TypeOrderNotFound:
		return http.StatusNotFound
	case errors.TypeNotOwner:
		return http.StatusForbidden
	case errors.TypeUnauthorized:
		return http.StatusUnauthorized
	case errors.TypeBackendUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	var body ErrorBody
	if domainErr, ok := err.(*errors.Error); ok {
		body.Error.Code = string(domainErr.Type)
		body.Error.Message = domainErr.Message
		body.Error.Context = domainErr.Context
		c.AbortWithStatusJSON(statusFor(domainErr.Type), body)
		return
	}

	body.Error.Code = string(errors.TypeInternal)
	body.Error.Message = "internal error"
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
