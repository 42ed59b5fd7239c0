// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/difrex/surok-build/internal/adapters/config"
	_ "github.com/difrex/surok-build/internal/adapters/docker"
	_ "github.com/difrex/surok-build/internal/adapters/fs"
	_ "github.com/difrex/surok-build/internal/adapters/logger"
	_ "github.com/difrex/surok-build/internal/adapters/shell"
	_ "github.com/difrex/surok-build/internal/adapters/source"
	_ "github.com/difrex/surok-build/internal/adapters/state"
	// Register app nodes.
	_ "github.com/difrex/surok-build/internal/app"
)
