package mcp

import (
	"context"

	"github.com/claude/gymmate/internal/models"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
)

// DataSource abstracts the program and profile stores for MCP tools. Both
// Local (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	GetProgram(ctx context.Context, id int) (models.Program, error)
	AddProgram(ctx context.Context, day, muscle string) (models.Program, error)
	UpdateProgram(ctx context.Context, id int, day, muscle string) (models.Program, error)
	DeleteProgram(ctx context.Context, id int) error
	SetProgress(ctx context.Context, id int, progress float64) (models.Program, error)
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, name, age string) (models.Profile, error)
}

// Local serves tools straight from the in-process stores.
type Local struct {
	Registry *registry.Registry
	Profile  *profile.Store
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

func (l Local) ListPrograms(context.Context) ([]models.Program, error) {
	return l.Registry.List(), nil
}

func (l Local) GetProgram(_ context.Context, id int) (models.Program, error) {
	return l.Registry.Get(id)
}

func (l Local) AddProgram(_ context.Context, day, muscle string) (models.Program, error) {
	return l.Registry.Add(day, muscle)
}

func (l Local) UpdateProgram(_ context.Context, id int, day, muscle string) (models.Program, error) {
	return l.Registry.Update(id, day, muscle)
}

func (l Local) DeleteProgram(_ context.Context, id int) error {
	return l.Registry.Delete(id)
}

func (l Local) SetProgress(_ context.Context, id int, progress float64) (models.Program, error) {
	return l.Registry.SetProgress(id, progress)
}

func (l Local) GetProfile(context.Context) (models.Profile, error) {
	return l.Profile.Get(), nil
}

func (l Local) UpdateProfile(_ context.Context, name, age string) (models.Profile, error) {
	return l.Profile.UpdateNameAge(name, age)
}
