// Package intl provides the message bundle and per-request localizers
// for user-facing text. Vietnamese is the default locale; English is
// available when the client asks for it via Accept-Language.
package intl

import (
	"context"
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

// SupportedLanguages lists the locales the console ships messages for.
// The first entry is the fallback.
var SupportedLanguages = []SupportedLanguage{
	{
		Code:        "vi",
		VerboseName: "Tiếng Việt",
		Tag:         language.Vietnamese,
	},
	{
		Code:        "en",
		VerboseName: "English",
		Tag:         language.English,
	},
}

// NewBundle loads the embedded message files into a bundle rooted at
// the Vietnamese fallback locale.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.Vietnamese)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, lang := range SupportedLanguages {
		path := fmt.Sprintf("locales/%s.toml", lang.Code)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", path, err)
		}
	}
	return bundle, nil
}

// MatchLanguage resolves an Accept-Language header value to one of the
// supported locales, falling back to Vietnamese.
func MatchLanguage(acceptLanguage string) language.Tag {
	fallback := SupportedLanguages[0].Tag
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	supported := make([]language.Tag, len(SupportedLanguages))
	for i, lang := range SupportedLanguages {
		supported[i] = lang.Tag
	}
	matcher := language.NewMatcher(supported)
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

type localizerKey struct{}
type localeKey struct{}

// WithLocale records the negotiated locale in the context.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

// UseLocale returns the negotiated locale, defaulting to Vietnamese.
func UseLocale(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return SupportedLanguages[0].Tag
}

// WithLocalizer stores a localizer in the context for handlers and
// presentation helpers to pick up.
func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

// UseLocalizer retrieves the request localizer, if one was installed.
func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey{}).(*i18n.Localizer)
	return l, ok
}

// T localizes messageID through the context localizer. When no
// localizer is present or the message is missing, it returns the
// message ID unchanged so callers always have something to show.
func T(ctx context.Context, messageID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return messageID
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
