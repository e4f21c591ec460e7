package intl

import (
	"context"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewBundle(t *testing.T) {
	bundle, err := NewBundle()
	require.NoError(t, err)

	t.Run("vietnamese labels", func(t *testing.T) {
		l := i18n.NewLocalizer(bundle, "vi")
		msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: "status.PENDING_APPROVAL"})
		require.NoError(t, err)
		assert.Equal(t, "Chờ duyệt", msg)

		msg, err = l.Localize(&i18n.LocalizeConfig{MessageID: "error.generic"})
		require.NoError(t, err)
		assert.Equal(t, "Đã xảy ra lỗi, vui lòng thử lại sau", msg)
	})

	t.Run("english labels", func(t *testing.T) {
		l := i18n.NewLocalizer(bundle, "en")
		msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: "status.PENDING_APPROVAL"})
		require.NoError(t, err)
		assert.Equal(t, "Pending approval", msg)
	})

	t.Run("unsupported locale falls back to vietnamese", func(t *testing.T) {
		l := i18n.NewLocalizer(bundle, "fr")
		msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: "status.DRAFT"})
		require.NoError(t, err)
		assert.Equal(t, "Nháp", msg)
	})
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{"empty header", "", language.Vietnamese},
		{"vietnamese", "vi", language.Vietnamese},
		{"english", "en-US,en;q=0.9", language.English},
		{"unsupported", "fr-FR", language.Vietnamese},
		{"garbage", ";;;", language.Vietnamese},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLanguage(tt.header))
		})
	}
}

func TestT(t *testing.T) {
	bundle, err := NewBundle()
	require.NoError(t, err)

	t.Run("localizes through context", func(t *testing.T) {
		ctx := WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "vi"))
		assert.Equal(t, "Đã duyệt", T(ctx, "status.APPROVED"))
	})

	t.Run("returns message id without localizer", func(t *testing.T) {
		assert.Equal(t, "status.APPROVED", T(context.Background(), "status.APPROVED"))
	})

	t.Run("returns message id for unknown message", func(t *testing.T) {
		ctx := WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "vi"))
		assert.Equal(t, "status.BOGUS", T(ctx, "status.BOGUS"))
	})
}
