package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
)

const timeout = 50 * time.Second

// ErrObjectNotExist is returned by LoadObject when the key is not in the bucket
var ErrObjectNotExist = storage.ErrObjectNotExist

// LoadObject decodes the JSON object stored under key object
func LoadObject(ctx context.Context, bucket, object string, data interface{}) error {
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage.NewClient: %v", err)
	}
	defer storageClient.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rc, err := storageClient.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrObjectNotExist
		}
		return fmt.Errorf("Object(%q).NewReader: %v", object, err)
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(data)
}

// SaveObject overwrite object on Google Cloud Storage with key object
func SaveObject(ctx context.Context, bucket, object string, o interface{}) error {
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage.NewClient: %v", err)
	}
	defer storageClient.Close()

	f := bytes.NewBuffer(nil)
	if err = json.NewEncoder(f).Encode(o); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Upload an object with storage.Writer.
	wc := storageClient.Bucket(bucket).Object(object).NewWriter(ctx)
	wc.ContentType = "application/json"
	if _, err = io.Copy(wc, f); err != nil {
		return fmt.Errorf("io.Copy: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}
	log.Printf("Cloud: blob with key %q uploaded", object)
	return nil
}
