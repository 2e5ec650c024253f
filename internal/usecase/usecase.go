package usecase

import "context"

type SyncUC interface {
	Authorize(ctx context.Context, tenantID int64, secret string) error
	ApplyChange(ctx context.Context, req *ApplyChangeReq) (*ApplyChangeRes, error)
}

type SearchUC interface {
	SearchByImage(ctx context.Context, req *SearchReq) (*SearchRes, error)
}

type IndexUC interface {
	IndexItem(ctx context.Context, itemID int64) (IndexOutcome, error)
}
