package datasource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/registry"
)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a data source factory under a type name.
func Register(typeName string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[typeName] = factory
}

// Create builds a data source of the given type.
func Create(typeName string, id registry.DataSourceID, config map[string]interface{}, logger *logging.Logger) (DataSource, error) {
	mu.RLock()
	factory, ok := factories[typeName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	if config == nil {
		config = map[string]interface{}{}
	}

	return factory(id, config, logger)
}

// List returns all registered type names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(TypeOneInch, NewOneInchSource)
	Register(TypeArken, NewArkenSource)
}
