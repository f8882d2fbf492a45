package docstore

import "manualrag/internal/domain"

// Storage enumerates and reads the manual documents.
type Storage interface {
	LoadAll() ([]domain.Document, error)
}
