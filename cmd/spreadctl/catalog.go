package main

import (
	"context"

	"github.com/okian/lurespread/internal/adapters/catalog"
	"github.com/okian/lurespread/pkg/logger"
)

// loadCatalog reads the catalog and logs its warnings.
func loadCatalog(ctx context.Context, path string) (catalog.Result, error) {
	res, err := catalog.LoadFile(ctx, path)
	if err != nil {
		return res, err
	}
	log := logger.Named("spreadctl")
	for _, w := range res.Warnings {
		log.Warn(ctx, "catalog warning", logger.String("lure", w.LureID), logger.String("message", w.Message))
	}
	return res, nil
}
