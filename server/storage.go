package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/storage"
)

// Object keys are derived from ids so re-uploads overwrite in place.

func songFileKey(id int64) string {
	return fmt.Sprintf("songs/%d", id)
}

func albumCoverKey(id int64) string {
	return fmt.Sprintf("covers/%d", id)
}

const uploadURLTTL = 15 * time.Minute

func storageGetURL(r *http.Request, key string) (string, error) {
	return storage.PresignedGetURL(r.Context(), key, storageURLTTL)
}

func storagePutURL(r *http.Request, key string) (string, error) {
	return storage.PresignedPutURL(r.Context(), key, uploadURLTTL)
}
