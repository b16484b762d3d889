// Package models contains the GORM persistence models for the doctoral
// trajectory core. Models are kept separate from domain entities: each
// model knows how to convert to and from its domain counterpart, and the
// repositories in the parent package are the only code that touches them.
//
// Nested value objects (project, cotutelle, funding, signatures) are
// flattened into prefixed columns; document reference lists are stored as
// Postgres text arrays.
package models
