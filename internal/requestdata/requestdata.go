package requestdata

import (
	"context"
)

// RequestData carries the verified caller identity through the request
// context once the auth middleware has run.
type RequestData struct {
	UserID      string
	Email       string
	DisplayName string
	TokenString string
}

type ctxKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, ctxKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(ctxKey{}).(*RequestData)
	return rd
}
