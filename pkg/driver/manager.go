package driver

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/pion/videoproxy/pkg/prop"
)

// ErrNotFound is returned when no registered driver matches a query.
var ErrNotFound = errors.New("driver: no matching driver found")

// FilterFn is being used to decide if a driver should be included in the
// query result.
type FilterFn func(Driver) bool

// FilterDeviceType returns a filter function to query drivers with a specific device type.
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Driver) bool {
		return d.Info().DeviceType == t
	}
}

// FilterLabel returns a filter function to query drivers with a specific label.
func FilterLabel(label string) FilterFn {
	return func(d Driver) bool {
		return d.Info().Label == label
	}
}

// FilterID returns a filter function to query drivers with a specific id.
func FilterID(id string) FilterFn {
	return func(d Driver) bool {
		return d.ID() == id
	}
}

// FilterAnd returns a filter function to take logical conjunction of given filters.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Driver) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// FilterNot returns a filter function to take logical inverse of the given filter.
func FilterNot(filter FilterFn) FilterFn {
	return func(d Driver) bool {
		return !filter(d)
	}
}

// Manager is a singleton to manage multiple drivers and their states
type Manager struct {
	mu      sync.Mutex
	drivers []Driver
}

var manager = NewManager()

// GetManager gets manager singleton instance
func GetManager() *Manager {
	return manager
}

// NewManager creates an empty manager, mostly useful for tests.
func NewManager() *Manager {
	return &Manager{}
}

// Register registers adapter to be discoverable by Query
func (m *Manager) Register(a Adapter, info Info) error {
	if a == nil {
		return fmt.Errorf("can't register a nil adapter")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = append(m.drivers, wrapAdapter(a, info))
	return nil
}

// Query queries by using f to filter drivers, and simply return the filtered results
// in registration order.
func (m *Manager) Query(f FilterFn) []Driver {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]Driver, 0)
	for _, d := range m.drivers {
		if f(d) {
			results = append(results, d)
		}
	}
	return results
}

// SelectBest opens every driver matching f, and returns the driver and properties with
// the lowest fitness distance to c. Drivers that were opened only for probing are closed
// again; the selected driver is left open.
func (m *Manager) SelectBest(f FilterFn, c prop.Constraints) (Driver, prop.Media, error) {
	var bestDriver Driver
	var bestProp prop.Media
	minFitnessDist := math.Inf(1)

	var probed []Driver
	for _, d := range m.Query(f) {
		if d.Status() == StateClosed {
			if err := d.Open(); err != nil {
				continue
			}
			probed = append(probed, d)
		}

		priority := float64(d.Info().Priority)
		for _, p := range d.Properties() {
			fitnessDist, ok := c.Compare(p)
			if !ok {
				continue
			}
			fitnessDist -= priority
			if fitnessDist < minFitnessDist {
				minFitnessDist = fitnessDist
				bestDriver = d
				bestProp = p
			}
		}
	}

	for _, d := range probed {
		if d != bestDriver {
			d.Close()
		}
	}

	if bestDriver == nil {
		return nil, prop.Media{}, ErrNotFound
	}
	return bestDriver, bestProp, nil
}
