package handler

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles journal and account HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// ListEntries handles listing journal entries
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	params := &repository.JournalFilterParams{
		Pagination: bindPagination(c),
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse("2006-01-02", startStr); err == nil {
			params.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse("2006-01-02", endStr); err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Journal entries retrieved successfully", result)
}

// GetEntry handles retrieving a single journal entry with its lines
func (h *LedgerHandler) GetEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Journal entry retrieved successfully", entry)
}

// CreateManualEntry handles posting a hand-written adjustment entry
func (h *LedgerHandler) CreateManualEntry(c *gin.Context) {
	var req struct {
		Date      time.Time                 `json:"date"`
		Narration string                    `json:"narration" binding:"required"`
		Lines     []service.ManualLineInput `json:"lines" binding:"required,min=2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.ledgerService.CreateManualEntry(c.Request.Context(), &service.CreateManualEntryInput{
		Date:      req.Date,
		Narration: req.Narration,
		Lines:     req.Lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Journal entry posted successfully", entry)
}

// ListAccounts handles listing ledger accounts
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.ledgerService.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounts retrieved successfully", accounts)
}

// AccountBalance handles computing a single account's net balance
func (h *LedgerHandler) AccountBalance(c *gin.Context) {
	accountID := c.Param("id")

	balance, err := h.ledgerService.AccountBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account balance retrieved successfully", balance)
}

// AccountStatement handles producing an account's running-balance statement
func (h *LedgerHandler) AccountStatement(c *gin.Context) {
	accountID := c.Param("id")

	statement, err := h.ledgerService.AccountStatement(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account statement retrieved successfully", statement)
}
