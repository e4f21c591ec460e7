package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/console/internal/infrastructure/erp"
)

// Modal form bodies. The binding tags mirror exactly the fields the
// screens mark as required; validation runs before any upstream call.

type PaymentVoucherRequest struct {
	VendorName    string          `json:"vendor_name" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Description   string          `json:"description"`
}

func (r PaymentVoucherRequest) ToPayload() erp.PaymentVoucherPayload {
	return erp.PaymentVoucherPayload{
		VendorName:    r.VendorName,
		Amount:        r.Amount,
		Currency:      r.Currency,
		PaymentMethod: r.PaymentMethod,
		Description:   r.Description,
	}
}

type DebitNoteRequest struct {
	CustomerName string          `json:"customer_name" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency"`
	Reason       string          `json:"reason" binding:"required"`
}

func (r DebitNoteRequest) ToPayload() erp.DebitNotePayload {
	return erp.DebitNotePayload{
		CustomerName: r.CustomerName,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Reason:       r.Reason,
	}
}

type VendorInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	VendorName    string          `json:"vendor_name" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency"`
	DueDate       *time.Time      `json:"due_date"`
}

func (r VendorInvoiceRequest) ToPayload() erp.VendorInvoicePayload {
	return erp.VendorInvoicePayload{
		InvoiceNumber: r.InvoiceNumber,
		VendorName:    r.VendorName,
		Amount:        r.Amount,
		Currency:      r.Currency,
		DueDate:       r.DueDate,
	}
}

type ConversationRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Channel      string `json:"channel" binding:"required,oneof=EMAIL PHONE CHAT ZALO"`
	Subject      string `json:"subject" binding:"required"`
	Assignee     string `json:"assignee"`
}

func (r ConversationRequest) ToPayload() erp.ConversationPayload {
	return erp.ConversationPayload{
		CustomerName: r.CustomerName,
		Channel:      r.Channel,
		Subject:      r.Subject,
		Assignee:     r.Assignee,
	}
}

type MessageRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (r MessageRequest) ToPayload() erp.MessagePayload {
	return erp.MessagePayload{Sender: r.Sender, Content: r.Content}
}

type TrainingCourseRequest struct {
	Name       string     `json:"name" binding:"required"`
	Instructor string     `json:"instructor" binding:"required"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Capacity   int        `json:"capacity" binding:"omitempty,min=1"`
}

func (r TrainingCourseRequest) ToPayload() erp.TrainingCoursePayload {
	return erp.TrainingCoursePayload{
		Name:       r.Name,
		Instructor: r.Instructor,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Capacity:   r.Capacity,
	}
}

type DepartmentRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ManagerName string `json:"manager_name"`
}

func (r DepartmentRequest) ToPayload() erp.DepartmentPayload {
	return erp.DepartmentPayload{Code: r.Code, Name: r.Name, ManagerName: r.ManagerName}
}

type BonusRequest struct {
	EmployeeName string          `json:"employee_name" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency"`
	Reason       string          `json:"reason" binding:"required"`
}

func (r BonusRequest) ToPayload() erp.BonusPayload {
	return erp.BonusPayload{
		EmployeeName: r.EmployeeName,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Reason:       r.Reason,
	}
}

type RoutingRequest struct {
	Code        string `json:"code" binding:"required"`
	ProductName string `json:"product_name" binding:"required"`
	StepCount   int    `json:"step_count" binding:"omitempty,min=1"`
}

func (r RoutingRequest) ToPayload() erp.RoutingPayload {
	return erp.RoutingPayload{Code: r.Code, ProductName: r.ProductName, StepCount: r.StepCount}
}

type QualityControlRequest struct {
	BatchCode   string `json:"batch_code" binding:"required"`
	ProductName string `json:"product_name" binding:"required"`
	Inspector   string `json:"inspector"`
	Notes       string `json:"notes"`
}

func (r QualityControlRequest) ToPayload() erp.QualityControlPayload {
	return erp.QualityControlPayload{
		BatchCode:   r.BatchCode,
		ProductName: r.ProductName,
		Inspector:   r.Inspector,
		Notes:       r.Notes,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (r CategoryRequest) ToPayload() erp.CategoryPayload {
	return erp.CategoryPayload{Name: r.Name, Description: r.Description}
}

type DispatchOrderRequest struct {
	Origin      string     `json:"origin" binding:"required"`
	Destination string     `json:"destination" binding:"required"`
	Cargo       string     `json:"cargo" binding:"required"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (r DispatchOrderRequest) ToPayload() erp.DispatchOrderPayload {
	return erp.DispatchOrderPayload{
		Origin:      r.Origin,
		Destination: r.Destination,
		Cargo:       r.Cargo,
		ScheduledAt: r.ScheduledAt,
	}
}

type AssignmentRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
	DriverID  string `json:"driver_id" binding:"required"`
}

func (r AssignmentRequest) ToPayload() erp.AssignmentPayload {
	return erp.AssignmentPayload{VehicleID: r.VehicleID, DriverID: r.DriverID}
}

type VehicleRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Model       string `json:"model" binding:"required"`
	CapacityKg  int    `json:"capacity_kg" binding:"omitempty,min=1"`
}

func (r VehicleRequest) ToPayload() erp.VehiclePayload {
	return erp.VehiclePayload{PlateNumber: r.PlateNumber, Model: r.Model, CapacityKg: r.CapacityKg}
}

type DriverRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number" binding:"required"`
}

func (r DriverRequest) ToPayload() erp.DriverPayload {
	return erp.DriverPayload{Name: r.Name, Phone: r.Phone, LicenseNumber: r.LicenseNumber}
}

type RiskRequest struct {
	ProjectName string `json:"project_name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Severity    string `json:"severity" binding:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Owner       string `json:"owner"`
	Mitigation  string `json:"mitigation"`
}

func (r RiskRequest) ToPayload() erp.RiskPayload {
	return erp.RiskPayload{
		ProjectName: r.ProjectName,
		Title:       r.Title,
		Severity:    r.Severity,
		Owner:       r.Owner,
		Mitigation:  r.Mitigation,
	}
}
