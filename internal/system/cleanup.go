package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/aliens/internal/core/ecs"
	coresys "github.com/l1jgo/aliens/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred despawn queue at frame end and, when
// enabled, checks the registry's index invariants.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	reg    *ecs.Registry
	verify bool
	log    *zap.Logger
}

func NewCleanupSystem(reg *ecs.Registry, verify bool, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{reg: reg, verify: verify, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) error {
	// Entities despawned directly earlier in the frame show up as stale ids.
	if _, err := s.reg.FlushDespawnQueue(); err != nil {
		s.log.Debug("stale despawn requests", zap.Error(err))
	}
	if s.verify {
		if err := s.reg.Verify(); err != nil {
			return fmt.Errorf("registry invariants: %w", err)
		}
	}
	return nil
}
