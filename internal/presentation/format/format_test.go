package format

import (
	"context"
	"testing"
	"time"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/intl"
)

func TestDate(t *testing.T) {
	t.Run("formats day first", func(t *testing.T) {
		d := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, "15/01/2026", Date(&d))
	})

	t.Run("nil renders empty", func(t *testing.T) {
		assert.Equal(t, "", Date(nil))
	})

	t.Run("zero renders empty", func(t *testing.T) {
		var zero time.Time
		assert.Equal(t, "", Date(&zero))
	})
}

func TestDateTime(t *testing.T) {
	d := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2026 14:30", DateTime(d))
	assert.Equal(t, "", DateTime(time.Time{}))
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		tag      language.Tag
		want     string
	}{
		{"vnd vietnamese grouping", "1500000", "VND", language.Vietnamese, "1.500.000 ₫"},
		{"vnd has no decimals", "1500000.75", "VND", language.Vietnamese, "1.500.001 ₫"},
		{"empty currency defaults to vnd", "250000", "", language.Vietnamese, "250.000 ₫"},
		{"vnd english grouping", "1500000", "VND", language.English, "1,500,000 ₫"},
		{"usd keeps two decimals", "1234.5", "USD", language.English, "1,234.50 $"},
		{"usd vietnamese separators", "1234.5", "USD", language.Vietnamese, "1.234,50 $"},
		{"negative amount", "-42000", "VND", language.Vietnamese, "-42.000 ₫"},
		{"unknown currency uses its code", "10", "JPY", language.English, "10.00 JPY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Money(amount, tt.currency, tt.tag))
		})
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "amber", StatusColor(status.StatusPendingApproval))
	assert.Equal(t, "green", StatusColor(status.StatusPaid))
	assert.Equal(t, "red", StatusColor(status.StatusFailed))
	assert.Equal(t, "gray", StatusColor(status.Status("SOMETHING_NEW")))
}

func TestStatusBadge(t *testing.T) {
	bundle, err := intl.NewBundle()
	require.NoError(t, err)

	t.Run("vietnamese label", func(t *testing.T) {
		ctx := intl.WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "vi"))
		badge := StatusBadge(ctx, status.StatusPendingApproval)
		assert.Equal(t, "PENDING_APPROVAL", badge.Status)
		assert.Equal(t, "Chờ duyệt", badge.Label)
		assert.Equal(t, "amber", badge.Color)
	})

	t.Run("unknown status falls back to raw value", func(t *testing.T) {
		ctx := intl.WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "vi"))
		badge := StatusBadge(ctx, status.Status("SOMETHING_NEW"))
		assert.Equal(t, "SOMETHING_NEW", badge.Label)
		assert.Equal(t, "gray", badge.Color)
	})

	t.Run("no localizer falls back to raw value", func(t *testing.T) {
		badge := StatusBadge(context.Background(), status.StatusDraft)
		assert.Equal(t, "DRAFT", badge.Label)
	})
}
