package registration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/lidofinance/ensreg/client/types"
)

var imageRecordKeys = []string{types.RecordAvatar, types.RecordHeader}

func generateSalt() common.Hash {
	return common.BytesToHash(frand.Bytes(common.HashLength))
}

// isLocalImage reports whether a record value points at a file picked on this
// machine rather than at an uploaded URL.
func isLocalImage(value string) bool {
	return strings.HasPrefix(value, "~") || strings.HasPrefix(value, "file")
}

// uploadRecordImages uploads the avatar and header images whose record values
// point at local files and substitutes the returned URLs. The input records
// are not modified.
func uploadRecordImages(
	ctx context.Context,
	uploader ImageUploader,
	records types.Records,
	images map[string]types.ImageMetadata,
) (types.Records, error) {
	result := records.Copy()
	if result == nil {
		result = types.Records{}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range imageRecordKeys {
		key := key
		image, ok := images[key]
		if !ok || !isLocalImage(records[key]) {
			continue
		}
		g.Go(func() error {
			url, err := uploader.Upload(gctx, image)
			if err != nil {
				return fmt.Errorf("failed to upload %s image: %w", key, err)
			}
			mu.Lock()
			result[key] = url
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
