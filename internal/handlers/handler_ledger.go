package handlers

import (
	"log/slog"

	"github.com/SscSPs/bank_api/internal/core/domain"
	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/SscSPs/bank_api/internal/dto"
	"github.com/SscSPs/bank_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the money movement routes.
func registerLedgerRoutes(r gin.IRoutes, ls portssvc.LedgerSvc) {
	h := newLedgerHandler(ls)

	r.POST("/deposit", h.deposit)
	r.POST("/transfer", h.transfer)
	r.POST("/takeloan", h.takeLoan)
	r.POST("/payloan", h.payLoan)
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits amount minus a 1 unit fee; the fee goes to BANK
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   deposit body dto.AmountRequest true "Credentials and amount"
// @Success 200 {object} dto.StatusResponse "200, 301, 302 or 303"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Store failure or BANK not registered"
// @Router /deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	var req dto.AmountRequest
	if !bindRequest(c, &req, "deposit") {
		return
	}
	status, err := h.ledgerService.Deposit(c.Request.Context(), *req.Username, *req.Password, *req.Amount)
	h.finish(c, *req.Username, "deposit", status, err, slog.Int64("amount", *req.Amount))
}

// transfer godoc
// @Summary Transfer to another account
// @Description Debits amount from the sender, credits amount minus a 1 unit fee to the recipient
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Credentials, recipient and amount"
// @Success 200 {object} dto.StatusResponse "200, 301, 302, 303, 304 or 305"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Store failure or BANK not registered"
// @Router /transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindRequest(c, &req, "transfer") {
		return
	}
	status, err := h.ledgerService.Transfer(c.Request.Context(), *req.Username, *req.Password, *req.To, *req.Amount)
	h.finish(c, *req.Username, "transfer", status, err, slog.String("to", *req.To), slog.Int64("amount", *req.Amount))
}

// takeLoan godoc
// @Summary Take a loan
// @Description Adds amount to both own balance and debt
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   loan body dto.AmountRequest true "Credentials and amount"
// @Success 200 {object} dto.StatusResponse "200, 301, 302 or 303"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /takeloan [post]
func (h *ledgerHandler) takeLoan(c *gin.Context) {
	var req dto.AmountRequest
	if !bindRequest(c, &req, "takeloan") {
		return
	}
	status, err := h.ledgerService.TakeLoan(c.Request.Context(), *req.Username, *req.Password, *req.Amount)
	h.finish(c, *req.Username, "take loan", status, err, slog.Int64("amount", *req.Amount))
}

// payLoan godoc
// @Summary Pay back a loan
// @Description Subtracts amount from both own balance and debt
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   loan body dto.AmountRequest true "Credentials and amount"
// @Success 200 {object} dto.StatusResponse "200, 301, 302, 305, 306 or 307"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payloan [post]
func (h *ledgerHandler) payLoan(c *gin.Context) {
	var req dto.AmountRequest
	if !bindRequest(c, &req, "payloan") {
		return
	}
	status, err := h.ledgerService.PayLoan(c.Request.Context(), *req.Username, *req.Password, *req.Amount)
	h.finish(c, *req.Username, "pay loan", status, err, slog.Int64("amount", *req.Amount))
}

func (h *ledgerHandler) finish(c *gin.Context, username, operation string, status domain.Status, err error, attrs ...any) {
	if err != nil {
		respondError(c, err, operation)
		return
	}
	attrs = append(attrs, slog.String("username", username), slog.Int("status", status.Code()))
	middleware.GetLoggerFromCtx(c.Request.Context()).Info(operation+" handled", attrs...)
	respondStatus(c, username, status)
}
