package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/presentation/format"
)

// AccountingHandler serves the payment voucher, debit note and vendor
// invoice screens.
type AccountingHandler struct {
	BaseHandler
	client erp.AccountingClient
	cfg    ScreenConfig
}

// NewAccountingHandler creates a new accounting screens handler
func NewAccountingHandler(client *erp.Client, cfg ScreenConfig) *AccountingHandler {
	return &AccountingHandler{client: client.Accounting(), cfg: cfg}
}

// RegisterRoutes registers the accounting screen routes
func (h *AccountingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vouchers := rg.Group("/accounting/payment-vouchers")
	{
		vouchers.GET("", h.ListPaymentVouchers)
		vouchers.POST("", h.CreatePaymentVoucher)
		vouchers.PUT("/:id", h.UpdatePaymentVoucher)
		vouchers.DELETE("/:id", h.DeletePaymentVoucher)
		vouchers.POST("/:id/actions/:action", h.TransitionPaymentVoucher)
	}

	notes := rg.Group("/accounting/debit-notes")
	{
		notes.GET("", h.ListDebitNotes)
		notes.POST("", h.CreateDebitNote)
		notes.PUT("/:id", h.UpdateDebitNote)
		notes.DELETE("/:id", h.DeleteDebitNote)
		notes.POST("/:id/actions/:action", h.TransitionDebitNote)
	}

	invoices := rg.Group("/accounting/vendor-invoices")
	{
		invoices.GET("", h.ListVendorInvoices)
		invoices.POST("", h.CreateVendorInvoice)
		invoices.PUT("/:id", h.UpdateVendorInvoice)
		invoices.DELETE("/:id", h.DeleteVendorInvoice)
		invoices.POST("/:id/actions/:action", h.TransitionVendorInvoice)
	}
}

var voucherColumns = []string{"code", "vendor", "amount", "status", "payment_date", "created_at"}

func (h *AccountingHandler) voucherRows(ctx context.Context, items []erp.PaymentVoucher) []dto.Row {
	locale := intl.UseLocale(ctx)
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"code":         item.Code,
				"vendor":       item.VendorName,
				"amount":       format.Money(item.Amount, item.Currency, locale),
				"payment_date": format.Date(item.PaymentDate),
				"created_at":   format.DateTime(item.CreatedAt),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.PaymentVouchers, status.Status(item.Status)),
		})
	}
	return rows
}

// ListPaymentVouchers renders the payment voucher list screen
func (h *AccountingHandler) ListPaymentVouchers(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, voucherColumns, bindListQuery(c),
		h.client.ListPaymentVouchers, h.voucherRows)
}

// CreatePaymentVoucher validates the modal form, creates the voucher
// and refreshes the list once
func (h *AccountingHandler) CreatePaymentVoucher(c *gin.Context) {
	var req dto.PaymentVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreatePaymentVoucher(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, voucherColumns, http.StatusCreated,
		h.client.ListPaymentVouchers, h.voucherRows)
}

// UpdatePaymentVoucher saves the edit modal and refreshes the list once
func (h *AccountingHandler) UpdatePaymentVoucher(c *gin.Context) {
	var req dto.PaymentVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdatePaymentVoucher(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, voucherColumns, http.StatusOK,
		h.client.ListPaymentVouchers, h.voucherRows)
}

// DeletePaymentVoucher deletes a draft voucher and refreshes the list
func (h *AccountingHandler) DeletePaymentVoucher(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	voucher, err := h.client.GetPaymentVoucher(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.PaymentVouchers.CanDelete(status.Status(voucher.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeletePaymentVoucher(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, voucherColumns, http.StatusOK,
		h.client.ListPaymentVouchers, h.voucherRows)
}

// TransitionPaymentVoucher forwards an eligible status action. An
// ineligible one is answered 422 without touching the backend.
func (h *AccountingHandler) TransitionPaymentVoucher(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	voucher, err := h.client.GetPaymentVoucher(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.PaymentVouchers.CanPerform(status.Status(voucher.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionPaymentVoucher(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, voucherColumns, http.StatusOK,
		h.client.ListPaymentVouchers, h.voucherRows)
}

var debitNoteColumns = []string{"code", "customer", "amount", "reason", "status", "issue_date"}

func (h *AccountingHandler) debitNoteRows(ctx context.Context, items []erp.DebitNote) []dto.Row {
	locale := intl.UseLocale(ctx)
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"code":       item.Code,
				"customer":   item.CustomerName,
				"amount":     format.Money(item.Amount, item.Currency, locale),
				"reason":     item.Reason,
				"issue_date": format.Date(item.IssueDate),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.DebitNotes, status.Status(item.Status)),
		})
	}
	return rows
}

func (h *AccountingHandler) ListDebitNotes(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, debitNoteColumns, bindListQuery(c),
		h.client.ListDebitNotes, h.debitNoteRows)
}

func (h *AccountingHandler) CreateDebitNote(c *gin.Context) {
	var req dto.DebitNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateDebitNote(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, debitNoteColumns, http.StatusCreated,
		h.client.ListDebitNotes, h.debitNoteRows)
}

func (h *AccountingHandler) UpdateDebitNote(c *gin.Context) {
	var req dto.DebitNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateDebitNote(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, debitNoteColumns, http.StatusOK,
		h.client.ListDebitNotes, h.debitNoteRows)
}

func (h *AccountingHandler) DeleteDebitNote(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	note, err := h.client.GetDebitNote(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.DebitNotes.CanDelete(status.Status(note.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteDebitNote(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, debitNoteColumns, http.StatusOK,
		h.client.ListDebitNotes, h.debitNoteRows)
}

func (h *AccountingHandler) TransitionDebitNote(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	note, err := h.client.GetDebitNote(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.DebitNotes.CanPerform(status.Status(note.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionDebitNote(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, debitNoteColumns, http.StatusOK,
		h.client.ListDebitNotes, h.debitNoteRows)
}

var invoiceColumns = []string{"invoice_number", "vendor", "amount", "status", "due_date", "created_at"}

func (h *AccountingHandler) invoiceRows(ctx context.Context, items []erp.VendorInvoice) []dto.Row {
	locale := intl.UseLocale(ctx)
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"invoice_number": item.InvoiceNumber,
				"vendor":         item.VendorName,
				"amount":         format.Money(item.Amount, item.Currency, locale),
				"due_date":       format.Date(item.DueDate),
				"created_at":     format.DateTime(item.CreatedAt),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.VendorInvoices, status.Status(item.Status)),
		})
	}
	return rows
}

func (h *AccountingHandler) ListVendorInvoices(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, invoiceColumns, bindListQuery(c),
		h.client.ListVendorInvoices, h.invoiceRows)
}

func (h *AccountingHandler) CreateVendorInvoice(c *gin.Context) {
	var req dto.VendorInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateVendorInvoice(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, invoiceColumns, http.StatusCreated,
		h.client.ListVendorInvoices, h.invoiceRows)
}

func (h *AccountingHandler) UpdateVendorInvoice(c *gin.Context) {
	var req dto.VendorInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateVendorInvoice(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, invoiceColumns, http.StatusOK,
		h.client.ListVendorInvoices, h.invoiceRows)
}

func (h *AccountingHandler) DeleteVendorInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	invoice, err := h.client.GetVendorInvoice(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.VendorInvoices.CanDelete(status.Status(invoice.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteVendorInvoice(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, invoiceColumns, http.StatusOK,
		h.client.ListVendorInvoices, h.invoiceRows)
}

func (h *AccountingHandler) TransitionVendorInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	invoice, err := h.client.GetVendorInvoice(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.VendorInvoices.CanPerform(status.Status(invoice.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionVendorInvoice(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, invoiceColumns, http.StatusOK,
		h.client.ListVendorInvoices, h.invoiceRows)
}
