package health

import (
	"context"
	"fmt"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

// EngineChecker verifies the kernel engine has completed its start-up
// validation and is accepting commands.
type EngineChecker struct {
	Engine *kernel.Engine
}

func (e *EngineChecker) Name() string { return "engine" }

func (e *EngineChecker) Check(ctx context.Context) error {
	if e.Engine == nil {
		return fmt.Errorf("engine not initialized")
	}
	if err := e.Engine.Start(); err != nil {
		return fmt.Errorf("engine failed validation: %w", err)
	}
	return nil
}
