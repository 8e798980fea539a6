package wishlist

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DefaultCheckChunkSize bounds how many membership checks run concurrently.
// A practical ceiling, not a measured backend limit.
const DefaultCheckChunkSize = 5

// checkFunc answers a single product's membership question.
type checkFunc func(ctx context.Context, productID int64) (bool, error)

// checkMembership partitions productIDs into fixed-size chunks and runs the
// checks of one chunk concurrently, waiting for every member to settle before
// the next chunk starts. A check that errors reads as "not in wishlist"; the
// combined errors are returned so the caller can log them once. The result
// covers every input identifier. Repeated identifiers are not deduplicated;
// each occurrence issues its own request.
func checkMembership(ctx context.Context, productIDs []int64, chunkSize int, check checkFunc) (map[int64]bool, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultCheckChunkSize
	}

	results := make(map[int64]bool, len(productIDs))
	var combined error

	for start := 0; start < len(productIDs); start += chunkSize {
		end := start + chunkSize
		if end > len(productIDs) {
			end = len(productIDs)
		}
		chunk := productIDs[start:end]

		statuses := make([]bool, len(chunk))
		errs := make([]error, len(chunk))

		var group errgroup.Group
		for i, productID := range chunk {
			i, productID := i, productID
			group.Go(func() error {
				statuses[i], errs[i] = check(ctx, productID)
				return nil
			})
		}
		_ = group.Wait()

		for i, productID := range chunk {
			if errs[i] != nil {
				results[productID] = false
				combined = multierr.Append(combined, errs[i])
				continue
			}
			results[productID] = statuses[i]
		}
	}

	return results, combined
}

// CheckMembership reports, for each given product, whether it is wishlisted
// in the shop. Failed checks degrade to false; failures are logged, never
// returned.
func (c *Client) CheckMembership(ctx context.Context, shopID int64, productIDs []int64) map[int64]bool {
	results, err := checkMembership(ctx, productIDs, c.checkChunkSize, func(ctx context.Context, productID int64) (bool, error) {
		return c.checkStatus(ctx, shopID, productID)
	})
	if err != nil {
		c.warn(ctx, "some wishlist membership checks failed", err, shopID)
		for range multierr.Errors(err) {
			c.metrics.IncCheckFailure()
		}
	}
	return results
}
