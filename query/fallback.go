package query

import (
	"context"
	"time"

	"github.com/goliatone/go-krishi-portal/offline"
	"github.com/goliatone/go-krishi-portal/remote"
	"go.uber.org/zap"
)

// ListView is what the view layer renders for a list resource.
// Offline is set when Items came from the offline cache.
type ListView[T any] struct {
	Items    []T
	Offline  bool
	CachedAt time.Time
}

// listView is the only place the offline classifier is consulted.
func listView[T any](ctx context.Context, o *Orchestrator, resource string, read func(context.Context) ([]T, error)) (ListView[T], error) {
	items, err := read(ctx)
	if err == nil {
		return ListView[T]{Items: items}, nil
	}
	if ctx.Err() != nil || o.offline == nil || !offline.IsOffline(err, o.reach) {
		return ListView[T]{}, err
	}

	cached, ok := offline.LoadAs[[]T](ctx, o.offline, resource)
	if !ok {
		return ListView[T]{}, err
	}
	at, _ := o.offline.Timestamp(ctx, resource)
	o.logger.Info("serving offline copy", zap.String("resource", resource), zap.Error(err))
	return ListView[T]{Items: cached, Offline: true, CachedAt: at}, nil
}

func (o *Orchestrator) CropAdvisoriesView(ctx context.Context) (ListView[remote.CropAdvisory], error) {
	return listView(ctx, o, ResourceAdvisories, o.CropAdvisories)
}

func (o *Orchestrator) MandiPricesView(ctx context.Context) (ListView[remote.MandiPrice], error) {
	return listView(ctx, o, ResourcePrices, o.MandiPrices)
}

func (o *Orchestrator) GovernmentSchemesView(ctx context.Context) (ListView[remote.GovernmentScheme], error) {
	return listView(ctx, o, ResourceSchemes, o.GovernmentSchemes)
}

func (o *Orchestrator) SoilReportsView(ctx context.Context) (ListView[remote.SoilReport], error) {
	return listView(ctx, o, ResourceSoilReports, o.SoilReports)
}

func (o *Orchestrator) ExpertQueriesView(ctx context.Context) (ListView[remote.ExpertQuery], error) {
	return listView(ctx, o, ResourceQueries, o.ExpertQueries)
}
