// Package i18n renders lifecycle statuses as display labels for the request's language.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// supported[0] is the fallback.
var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var labels = map[string][2]string{
	"draft":     {"Draft", "Rascunho"},
	"pending":   {"Pending", "Pendente"},
	"open":      {"Open", "Aberto"},
	"closed":    {"Closed", "Fechado"},
	"used":      {"Used", "Utilizado"},
	"scheduled": {"Scheduled", "Agendado"},
	"approved":  {"Approved", "Aprovado"},
	"taken":     {"Taken", "Gozado"},
}

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(supported[0]))
	for status, text := range labels {
		for i, tag := range supported {
			if err := b.SetString(tag, statusKey(status), text[i]); err != nil {
				panic(err)
			}
		}
	}
	return b
}

func statusKey(status string) string {
	return "status." + status
}

// Match picks the supported language closest to an Accept-Language header.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return supported[0]
	}
	return supported[index]
}

// StatusLabel returns the display label of status, or status itself when it has none.
func StatusLabel(tag language.Tag, status string) string {
	if _, ok := labels[status]; !ok {
		return status
	}
	return message.NewPrinter(tag, message.Catalog(cat)).Sprintf(statusKey(status))
}

type ctxKey struct{}

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the language stored by WithLanguage, or the fallback.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return supported[0]
}
