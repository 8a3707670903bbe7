package store

import (
	"fmt"
	"path/filepath"
)

// Driver names accepted by Open.
const (
	DriverFilesystem = "fs"
	DriverSQLite     = "sqlite"
	DriverMemory     = "memory"
)

// Open selects a backend by driver name. dataDir is the root for file-backed
// drivers; memory ignores it.
func Open(driver, dataDir string) (Backend, error) {
	switch driver {
	case "", DriverFilesystem:
		return NewFilesystem(dataDir)
	case DriverSQLite:
		if dataDir == "" {
			dataDir = "./farmdata"
		}
		return NewSQLite(filepath.Join(dataDir, "farmkeep.db"))
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
