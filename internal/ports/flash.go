package ports

import (
	"context"

	"github.com/target/catalog-console/internal/domain/notice"
)

// FlashStore keeps notices between the request that raises them and the next
// page render for the same browser. Pop returns and removes everything queued
// under id; an unknown id yields an empty slice and no error.
type FlashStore interface {
	Push(ctx context.Context, id string, n notice.Notice) error
	Pop(ctx context.Context, id string) ([]notice.Notice, error)
}
