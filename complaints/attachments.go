package complaints

import (
	"context"
	"log"
	"sync"

	"societypro-be/models"
)

// AttachmentManager moves complaint images in and out of external object
// storage. Uploads are all-or-nothing per batch; deletions are best effort.
type AttachmentManager struct {
	Storage ObjectStorage
}

// Attach uploads every file concurrently and returns the stored records in
// input order. If any upload fails, the files that did make it are deleted
// before the error is returned, so a failed batch never leaves orphans.
func (m *AttachmentManager) Attach(ctx context.Context, files []UploadFile) ([]models.ComplaintImage, error) {
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]*UploadResult, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()
			res, err := m.Storage.Upload(ctx, f)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = &res
		}(i, f)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}

	if firstErr != nil {
		uploaded := make([]string, 0, len(files))
		for _, res := range results {
			if res != nil {
				uploaded = append(uploaded, res.PublicID)
			}
		}
		m.Detach(ctx, uploaded)
		return nil, firstErr
	}

	images := make([]models.ComplaintImage, len(files))
	for i, res := range results {
		images[i] = models.ComplaintImage{URL: res.URL, PublicID: res.PublicID}
	}
	return images, nil
}

// Detach deletes the named objects from storage. Missing objects and
// storage failures are logged and absorbed; a dangling object is acceptable,
// a failed complaint mutation is not.
func (m *AttachmentManager) Detach(ctx context.Context, publicIDs []string) {
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := m.Storage.Delete(ctx, id); err != nil {
			log.Printf("failed to delete image %s from storage: %v", id, err)
		}
	}
}
