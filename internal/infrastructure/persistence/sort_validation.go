package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// TrajectorySortFields contains allowed sort fields for trajectories
var TrajectorySortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"reference":        true,
	"status":           true,
	"training_acronym": true,
	"training_year":    true,
	"project_title":    true,
	"admitted_at":      true,
}

// ActivitySortFields contains allowed sort fields for training activities
var ActivitySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"category":   true,
	"context":    true,
	"status":     true,
	"title":      true,
	"start_date": true,
	"end_date":   true,
	"ects":       true,
}

// ConfirmationPaperSortFields contains allowed sort fields for confirmation papers
var ConfirmationPaperSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"deadline_date": true,
	"taken_date":    true,
	"active":        true,
}

// DocumentSortFields contains allowed sort fields for trajectory documents
var DocumentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"type":        true,
	"label":       true,
	"uploaded_at": true,
}

// HistoryEntrySortFields contains allowed sort fields for history entries
var HistoryEntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"author":     true,
}
