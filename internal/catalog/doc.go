// Package catalog holds the static block metadata model: definitions, their
// parameters and child containers, the registry they are served from, and the
// loaders for the catalog document formats.
package catalog
