package ingestion

import (
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/gin-gonic/gin"
)

// EventSink accepts play events without blocking.
type EventSink interface {
	PostEvent(evt v1.PlayEvent) bool
}

type Service struct {
	sink             EventSink
	maxBodySizeBytes int
	nowFn            func() time.Time
}

func NewService(sink EventSink, maxBodySizeMB int) *Service {
	if sink == nil {
		panic("ingestion: sink must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		sink:             sink,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            time.Now,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/plays", s.IngestHandler)
}
