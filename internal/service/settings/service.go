package settings

import (
	"context"
	"fmt"

	"github.com/mrkunal0430/hrms/internal/domain/settings"
)

// Service resolves the effective configuration for a department by merging
// the global settings with the department override, if any.
type Service struct {
	repo settings.Repository
}

func NewService(repo settings.Repository) *Service {
	return &Service{repo: repo}
}

// Effective returns the merged configuration. A nil departmentID resolves the
// plain global settings.
func (s *Service) Effective(ctx context.Context, departmentID *string) (settings.Effective, error) {
	global, err := s.repo.GetGlobal(ctx)
	if err != nil {
		return settings.Effective{}, fmt.Errorf("failed to load global settings: %w", err)
	}

	var override *settings.DepartmentOverride
	if departmentID != nil {
		override, err = s.repo.GetDepartmentOverride(ctx, *departmentID)
		if err != nil {
			return settings.Effective{}, fmt.Errorf("failed to load department settings: %w", err)
		}
	}

	return settings.ResolveEffective(global, override)
}
