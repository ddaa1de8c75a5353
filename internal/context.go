package internal

import "context"

type ctxKeyCorrelationId struct{}

type ctxKeyLanguage struct{}

func CtxWithCorrelationId(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationId{}, correlationId)
}

func CorrelationIdFromCtx(ctx context.Context) string {
	item := ctx.Value(ctxKeyCorrelationId{})
	correlationId, ok := item.(string)
	if ok {
		return correlationId
	}
	return ""
}

// CtxWithLanguage stores the language user facing messages should be
// rendered in for the lifetime of a request
func CtxWithLanguage(ctx context.Context, language string) context.Context {
	return context.WithValue(ctx, ctxKeyLanguage{}, language)
}

func LanguageFromCtx(ctx context.Context) string {
	item := ctx.Value(ctxKeyLanguage{})
	language, ok := item.(string)
	if ok {
		return language
	}
	return ""
}
