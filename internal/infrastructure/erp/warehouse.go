package erp

import (
	"context"
	"time"
)

// WarehouseClient covers product categories and the stock overview.
type WarehouseClient struct {
	c *Client
}

func (c *Client) Warehouse() WarehouseClient {
	return WarehouseClient{c: c}
}

// Category groups products in the warehouse catalog.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (w WarehouseClient) ListCategories(ctx context.Context, q ListQuery) (*Page[Category], error) {
	return list[Category](ctx, w.c, "categories", "/warehouse/categories", q)
}

func (w WarehouseClient) GetCategory(ctx context.Context, id string) (*Category, error) {
	return get[Category](ctx, w.c, "categories", "/warehouse/categories/"+id)
}

func (w WarehouseClient) CreateCategory(ctx context.Context, p CategoryPayload) (*Category, error) {
	return create[Category](ctx, w.c, "categories", "/warehouse/categories", p)
}

func (w WarehouseClient) UpdateCategory(ctx context.Context, id string, p CategoryPayload) (*Category, error) {
	return update[Category](ctx, w.c, "categories", "/warehouse/categories/"+id, p)
}

func (w WarehouseClient) DeleteCategory(ctx context.Context, id string) error {
	return remove(ctx, w.c, "categories", "/warehouse/categories/"+id)
}

// StockItem is one row of the read-only stock overview.
type StockItem struct {
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	OnHand      int64  `json:"on_hand"`
	Reserved    int64  `json:"reserved"`
	Available   int64  `json:"available"`
	Unit        string `json:"unit"`
}

func (w WarehouseClient) ListStock(ctx context.Context, q ListQuery) (*Page[StockItem], error) {
	return list[StockItem](ctx, w.c, "stock", "/warehouse/stock", q)
}
