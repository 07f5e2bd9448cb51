package storage

import "deployScope/internal/model"

// Storage defines a sink for decoded deployment rows.
type Storage interface {
	PutDeploymentBatch(rows []model.DeploymentRow) error
}
