package gravel

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/calcerr"
)

// Descriptor summarizes one registered calculation for discovery and UIs.
type Descriptor struct {
	// Name is the unique calculation identifier.
	Name string `json:"name"`

	// Version is the calculation version.
	Version string `json:"version"`

	// Description explains what the calculation computes.
	Description string `json:"description"`

	// Parameters lists the declared parameter names in sorted order.
	Parameters []string `json:"parameters"`
}

// Catalogue is an in-memory registry of calculations keyed by name.
// It is safe for concurrent use.
type Catalogue struct {
	mu           sync.RWMutex
	calculations map[string]*calc.Calculation
	logger       *slog.Logger
}

// NewCatalogue creates an empty calculation catalogue.
// A nil logger defaults to slog.Default().
func NewCatalogue(logger *slog.Logger) *Catalogue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalogue{
		calculations: make(map[string]*calc.Calculation),
		logger:       logger,
	}
}

// Register adds a calculation to the catalogue.
// Returns a configuration error if the calculation is nil or a calculation
// with the same name is already registered.
func (c *Catalogue) Register(calculation *calc.Calculation) error {
	const op = "Catalogue.Register"

	if calculation == nil {
		return calcerr.NewConfigurationError(op, errors.New("calculation cannot be nil"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	name := calculation.Name()
	if _, exists := c.calculations[name]; exists {
		return calcerr.NewConfigurationError(op,
			fmt.Errorf("%w: %s", calcerr.ErrDuplicateCalculation, name))
	}

	c.calculations[name] = calculation
	c.logger.Debug("calculation registered", "name", name, "version", calculation.Version())
	return nil
}

// Get retrieves a calculation by name.
// Returns a configuration error wrapping ErrCalculationNotFound if no
// calculation with that name is registered.
func (c *Catalogue) Get(name string) (*calc.Calculation, error) {
	const op = "Catalogue.Get"

	c.mu.RLock()
	defer c.mu.RUnlock()

	calculation, exists := c.calculations[name]
	if !exists {
		return nil, calcerr.NewConfigurationError(op,
			fmt.Errorf("%w: %s", calcerr.ErrCalculationNotFound, name))
	}

	return calculation, nil
}

// List returns descriptors for all registered calculations, sorted by name.
func (c *Catalogue) List() []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(c.calculations))
	for _, calculation := range c.calculations {
		s := calculation.Schema()
		names := make([]string, 0, len(s.Parameters))
		for name := range s.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)

		descriptors = append(descriptors, Descriptor{
			Name:        calculation.Name(),
			Version:     calculation.Version(),
			Description: calculation.Description(),
			Parameters:  names,
		})
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})

	return descriptors
}

// Unregister removes a calculation from the catalogue.
// Returns a configuration error wrapping ErrCalculationNotFound if no
// calculation with that name is registered.
func (c *Catalogue) Unregister(name string) error {
	const op = "Catalogue.Unregister"

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.calculations[name]; !exists {
		return calcerr.NewConfigurationError(op,
			fmt.Errorf("%w: %s", calcerr.ErrCalculationNotFound, name))
	}

	delete(c.calculations, name)
	c.logger.Debug("calculation unregistered", "name", name)
	return nil
}

// defaultCatalogue backs the package-level registration functions.
var defaultCatalogue = NewCatalogue(nil)

// Register adds a calculation to the default catalogue.
func Register(calculation *calc.Calculation) error {
	return defaultCatalogue.Register(calculation)
}

// MustRegister adds a calculation to the default catalogue and panics on
// failure. Intended for package-level registration of the built-in formula
// catalogue, where a registration error is a programming mistake.
func MustRegister(calculation *calc.Calculation) {
	if err := defaultCatalogue.Register(calculation); err != nil {
		panic(err)
	}
}

// Get retrieves a calculation from the default catalogue by name.
func Get(name string) (*calc.Calculation, error) {
	return defaultCatalogue.Get(name)
}

// List returns descriptors for all calculations in the default catalogue.
func List() []Descriptor {
	return defaultCatalogue.List()
}
