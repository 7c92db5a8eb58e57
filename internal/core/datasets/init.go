// Package datasets registers the built-in ISO dataset definitions with the
// core registry. Import this package to ensure all datasets are registered.
package datasets

// Each file registers one dataset group from init().
