package spins

import (
	"encoding/csv"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zootechx/spinwheel-backend/internal/models"
)

// SpinResponse is the body returned by POST /api/spin. The wheel client
// renders Message and CouponCode verbatim.
type SpinResponse struct {
	Allowed    bool   `json:"allowed"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Handler handles the spin and reporting HTTP endpoints.
type Handler struct {
	svc    *Service
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a spins handler.
func NewHandler(svc *Service, store *Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, store: store, logger: logger}
}

// Spin handles POST /api/spin. Runs the request through the eligibility
// gate and maps its outcome onto the wire contract.
func (h *Handler) Spin(c *gin.Context) {
	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed body is indistinguishable from missing fields to the client.
		c.JSON(http.StatusBadRequest, SpinResponse{Allowed: false, Message: MsgMissingFields})
		return
	}

	h.logger.Info("spin request",
		zap.String("email", req.Email),
		zap.String("domain", req.Domain),
		zap.Int("discount", req.Discount),
		zap.String("coupon", req.CouponCode),
	)

	switch h.svc.Spin(c.Request.Context(), req) {
	case OutcomeAccepted:
		c.JSON(http.StatusOK, SpinResponse{
			Allowed:    true,
			Success:    true,
			Message:    MsgCouponSent,
			CouponCode: req.CouponCode,
		})
	case OutcomeMissingFields:
		c.JSON(http.StatusBadRequest, SpinResponse{Allowed: false, Message: MsgMissingFields})
	case OutcomeAlreadySpun:
		c.JSON(http.StatusOK, SpinResponse{Allowed: false, Message: MsgAlreadySpun})
	default:
		c.JSON(http.StatusInternalServerError, SpinResponse{Allowed: false, Message: MsgInternalError})
	}
}

// List handles GET /api/spins. Returns every record as a JSON array, newest
// first. Admin-only by convention; not enforced.
func (h *Handler) List(c *gin.Context) {
	records := h.store.LoadAll()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if records == nil {
		records = []models.SpinRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// Export handles GET /api/export. Streams the record set as a CSV
// attachment.
func (h *Handler) Export(c *gin.Context) {
	records := h.store.LoadAll()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="spins.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "Name", "Email", "Phone", "Domain", "Discount", "CouponCode", "CreatedAt"})
	for _, rec := range records {
		if err := w.Write([]string{
			strconv.Itoa(rec.ID),
			rec.Name,
			rec.Email,
			rec.Phone,
			rec.Domain,
			strconv.Itoa(rec.Discount),
			rec.CouponCode,
			rec.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			h.logger.Error("csv export write failed", zap.Error(err))
			return
		}
	}
	w.Flush()
}
