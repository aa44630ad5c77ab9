package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/poolwatch/poolwatch/pkg/httpkit"
	"github.com/poolwatch/poolwatch/web/api"
	"github.com/poolwatch/poolwatch/web/handler/bind"
	"github.com/poolwatch/poolwatch/web/pool"
)

const GetPoolRoute = http.MethodGet + " " + "/pool"

var ErrQueryFailed = errors.New("failed to query pool data")

// PoolFinder runs pool queries
type PoolFinder interface {
	Find(ctx context.Context, q pool.Query) (pool.Page, error)
}

type GetPool struct {
	finder PoolFinder
}

func NewGetPool(finder PoolFinder) *GetPool {
	return &GetPool{finder: finder}
}

func (h *GetPool) AddRoutes(m *http.ServeMux) {
	m.Handle(GetPoolRoute, httpkit.HandlerFunc(h.GetPool))
}

func (h *GetPool) GetPool(_ http.ResponseWriter, r *http.Request) http.HandlerFunc {
	req, err := bind.GetPoolRequest(r)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	query, err := pool.NewQuery(req.MinStake, req.Sort, req.Limit)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	page, err := h.finder.Find(r.Context(), query)
	switch {
	case errors.Is(err, pool.ErrNotPublished):
		return httpkit.JsonError(api.NotFound(pool.ErrNotPublished))
	case err != nil:
		return httpkit.JsonError(api.Wrap(fmt.Errorf("%w: %w", ErrQueryFailed, err)))
	}

	return httpkit.JSON(bind.GetPoolResponse(page))
}
