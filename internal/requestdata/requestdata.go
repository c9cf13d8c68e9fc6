package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData carries the caller identity and capability flags resolved by
// the auth middleware. Services read capabilities from here instead of any
// ambient current-user state.
type RequestData struct {
	TokenString     string
	UserID          uuid.UUID
	IsAuthenticated bool
	CanAuthor       bool
	IsAdmin         bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
