package progress

import (
	"github.com/elC0mpa/azure-storage-doctor/model"
	"go.uber.org/zap"
)

type service struct {
	path   string
	rows   []model.ResultRow
	keys   map[string]struct{}
	logger *zap.Logger
}

// ProgressService is the resumable result table of one report. Every
// Append is persisted before it returns.
type ProgressService interface {
	Has(key string) bool
	Append(row model.ResultRow) error
	Rows() []model.ResultRow
	Reset() error
}
