package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/service"
	"github.com/MKhiriev/go-card-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrSyncInProgress:   http.StatusConflict,
	service.ErrPreCheckCritical: http.StatusPreconditionFailed,
	service.ErrNotPaused:        http.StatusConflict,
	service.ErrNotSyncing:       http.StatusConflict,

	store.ErrEntityNotFound: http.StatusNotFound,
	store.ErrCorruptPayload: http.StatusInternalServerError,

	adapter.ErrUnauthorized: http.StatusBadGateway,
	adapter.ErrTransport:    http.StatusBadGateway,
	adapter.ErrRejected:     http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
