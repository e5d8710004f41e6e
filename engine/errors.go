package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError
	ErrConfiguration = errors.New("engine: invalid configuration")
	// ErrMissingBinding is matched by every *MissingBindingError
	ErrMissingBinding = errors.New("engine: missing binding")
	// ErrAssetNotFound is matched by every *AssetNotFoundError
	ErrAssetNotFound = errors.New("engine: asset not found")
	// ErrComponentNotFound is returned when removing a component the entity does not own
	ErrComponentNotFound = errors.New("engine: component not found on entity")
	// ErrTransformRequired is returned when removing the built-in transform
	ErrTransformRequired = errors.New("engine: transform component cannot be removed")
)

// ConfigurationError reports an invalid startup setting, fatal at initialization
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MissingBindingError reports removal of a binding or subscription that does not exist
type MissingBindingError struct {
	Name string
	Kind string
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("missing %s binding %q", e.Kind, e.Name)
}

func (e *MissingBindingError) Is(target error) bool {
	return target == ErrMissingBinding
}

// AssetNotFoundError reports an asset path that does not resolve
type AssetNotFoundError struct {
	Path string
	Err  error
}

func (e *AssetNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("asset not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("asset not found: %s", e.Path)
}

func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

func (e *AssetNotFoundError) Unwrap() error {
	return e.Err
}
