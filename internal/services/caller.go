package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
	"github.com/guidedtopic/guidedtopic-backend/internal/requestdata"
)

// caller resolves the authenticated identity from the request context.
func caller(ctx context.Context) (*requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsAuthenticated || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: no authenticated caller", apperr.ErrForbidden)
	}
	return rd, nil
}

// requireAuthor resolves the caller and checks the educator capability.
func requireAuthor(ctx context.Context) (*requestdata.RequestData, error) {
	rd, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if !rd.CanAuthor {
		return nil, fmt.Errorf("%w: caller lacks author capability", apperr.ErrForbidden)
	}
	return rd, nil
}

// requireOwnerOrAdmin checks that the caller owns the resource or holds the
// administrative override.
func requireOwnerOrAdmin(ctx context.Context, ownerID uuid.UUID) (*requestdata.RequestData, error) {
	rd, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if rd.UserID != ownerID && !rd.IsAdmin {
		return nil, fmt.Errorf("%w: caller is neither owner nor admin", apperr.ErrForbidden)
	}
	return rd, nil
}
