package erp

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountingClient covers payment vouchers, debit notes and vendor
// invoices.
type AccountingClient struct {
	c *Client
}

func (c *Client) Accounting() AccountingClient {
	return AccountingClient{c: c}
}

// PaymentVoucher is an outgoing payment awaiting the approval flow.
type PaymentVoucher struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	VendorName    string          `json:"vendor_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PaymentVoucherPayload is the create/update body.
type PaymentVoucherPayload struct {
	VendorName    string          `json:"vendor_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description,omitempty"`
}

func (a AccountingClient) ListPaymentVouchers(ctx context.Context, q ListQuery) (*Page[PaymentVoucher], error) {
	return list[PaymentVoucher](ctx, a.c, "payment_vouchers", "/accounting/payment-vouchers", q)
}

func (a AccountingClient) GetPaymentVoucher(ctx context.Context, id string) (*PaymentVoucher, error) {
	return get[PaymentVoucher](ctx, a.c, "payment_vouchers", "/accounting/payment-vouchers/"+id)
}

func (a AccountingClient) CreatePaymentVoucher(ctx context.Context, p PaymentVoucherPayload) (*PaymentVoucher, error) {
	return create[PaymentVoucher](ctx, a.c, "payment_vouchers", "/accounting/payment-vouchers", p)
}

func (a AccountingClient) UpdatePaymentVoucher(ctx context.Context, id string, p PaymentVoucherPayload) (*PaymentVoucher, error) {
	return update[PaymentVoucher](ctx, a.c, "payment_vouchers", "/accounting/payment-vouchers/"+id, p)
}

func (a AccountingClient) DeletePaymentVoucher(ctx context.Context, id string) error {
	return remove(ctx, a.c, "payment_vouchers", "/accounting/payment-vouchers/"+id)
}

// TransitionPaymentVoucher posts a status action such as submit,
// approve, reject, pay or cancel.
func (a AccountingClient) TransitionPaymentVoucher(ctx context.Context, id, name string) (*PaymentVoucher, error) {
	return action[PaymentVoucher](ctx, a.c, "payment_vouchers", "/accounting/payment-vouchers/"+id, name)
}

// DebitNote adjusts a customer balance downward.
type DebitNote struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	IssueDate    *time.Time      `json:"issue_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type DebitNotePayload struct {
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency,omitempty"`
	Reason       string          `json:"reason"`
}

func (a AccountingClient) ListDebitNotes(ctx context.Context, q ListQuery) (*Page[DebitNote], error) {
	return list[DebitNote](ctx, a.c, "debit_notes", "/accounting/debit-notes", q)
}

func (a AccountingClient) GetDebitNote(ctx context.Context, id string) (*DebitNote, error) {
	return get[DebitNote](ctx, a.c, "debit_notes", "/accounting/debit-notes/"+id)
}

func (a AccountingClient) CreateDebitNote(ctx context.Context, p DebitNotePayload) (*DebitNote, error) {
	return create[DebitNote](ctx, a.c, "debit_notes", "/accounting/debit-notes", p)
}

func (a AccountingClient) UpdateDebitNote(ctx context.Context, id string, p DebitNotePayload) (*DebitNote, error) {
	return update[DebitNote](ctx, a.c, "debit_notes", "/accounting/debit-notes/"+id, p)
}

func (a AccountingClient) DeleteDebitNote(ctx context.Context, id string) error {
	return remove(ctx, a.c, "debit_notes", "/accounting/debit-notes/"+id)
}

func (a AccountingClient) TransitionDebitNote(ctx context.Context, id, name string) (*DebitNote, error) {
	return action[DebitNote](ctx, a.c, "debit_notes", "/accounting/debit-notes/"+id, name)
}

// VendorInvoice is a bill received from a supplier.
type VendorInvoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	VendorName    string          `json:"vendor_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type VendorInvoicePayload struct {
	InvoiceNumber string          `json:"invoice_number"`
	VendorName    string          `json:"vendor_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
}

func (a AccountingClient) ListVendorInvoices(ctx context.Context, q ListQuery) (*Page[VendorInvoice], error) {
	return list[VendorInvoice](ctx, a.c, "vendor_invoices", "/accounting/vendor-invoices", q)
}

func (a AccountingClient) GetVendorInvoice(ctx context.Context, id string) (*VendorInvoice, error) {
	return get[VendorInvoice](ctx, a.c, "vendor_invoices", "/accounting/vendor-invoices/"+id)
}

func (a AccountingClient) CreateVendorInvoice(ctx context.Context, p VendorInvoicePayload) (*VendorInvoice, error) {
	return create[VendorInvoice](ctx, a.c, "vendor_invoices", "/accounting/vendor-invoices", p)
}

func (a AccountingClient) UpdateVendorInvoice(ctx context.Context, id string, p VendorInvoicePayload) (*VendorInvoice, error) {
	return update[VendorInvoice](ctx, a.c, "vendor_invoices", "/accounting/vendor-invoices/"+id, p)
}

func (a AccountingClient) DeleteVendorInvoice(ctx context.Context, id string) error {
	return remove(ctx, a.c, "vendor_invoices", "/accounting/vendor-invoices/"+id)
}

func (a AccountingClient) TransitionVendorInvoice(ctx context.Context, id, name string) (*VendorInvoice, error) {
	return action[VendorInvoice](ctx, a.c, "vendor_invoices", "/accounting/vendor-invoices/"+id, name)
}
