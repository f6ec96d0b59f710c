// Package config loads declarative route tables from YAML and builds
// them onto a router through an explicit handler registry.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RouteEntry is one declarative route definition.
type RouteEntry struct {
	// Name registers the route for reverse URL generation when set.
	Name string `yaml:"name" validate:"omitempty,min=1"`
	// Pattern is the path template, e.g. "/books/:id".
	Pattern string `yaml:"pattern" validate:"required,startswith=/"`
	// Methods lists the HTTP methods the route answers to.
	Methods []string `yaml:"methods" validate:"required,min=1,dive,oneof=GET POST PUT DELETE PATCH HEAD OPTIONS ANY"`
	// Handler is the symbolic name resolved through the registry.
	Handler string `yaml:"handler" validate:"required"`
	// Middleware names are resolved through the registry, in order.
	Middleware []string `yaml:"middleware" validate:"omitempty,dive,min=1"`
}

// RouteTable is the root of a route-table file.
type RouteTable struct {
	Routes []RouteEntry `yaml:"routes" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Parse unmarshals and validates a route table.
func Parse(data []byte) (*RouteTable, error) {
	var table RouteTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// Load reads and parses the route table at path.
func Load(path string) (*RouteTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}
	return Parse(data)
}

// Validate checks the table against its struct constraints.
func (t *RouteTable) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid route table: %w", err)
	}
	return nil
}
