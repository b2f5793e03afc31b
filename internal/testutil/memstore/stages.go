package memstore

import (
	"context"
	"slices"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

type stageRepo struct{ s *Store }

func (r stageRepo) Create(_ context.Context, st *entity.PipelineStage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stages = append(r.s.stages, cloneOne(st))
	return nil
}

func (r stageRepo) GetByID(_ context.Context, id string) (*entity.PipelineStage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, st := find(r.s.stages, func(x *entity.PipelineStage) bool { return x.ID == id })
	return cloneOne(st), nil
}

func (r stageRepo) sorted() []*entity.PipelineStage {
	out := cloneAll(r.s.stages)
	slices.SortStableFunc(out, func(a, b *entity.PipelineStage) int { return a.Position - b.Position })
	return out
}

func (r stageRepo) List(_ context.Context) ([]*entity.PipelineStage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(), nil
}

func (r stageRepo) GetDefault(_ context.Context) (*entity.PipelineStage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, st := find(r.s.stages, func(x *entity.PipelineStage) bool { return x.IsDefault })
	return cloneOne(st), nil
}

func (r stageRepo) NextAfter(_ context.Context, position int) (*entity.PipelineStage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.sorted() {
		if st.Position > position {
			return st, nil
		}
	}
	return nil, nil
}

func (r stageRepo) MaxPosition(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	top := 0
	for _, st := range r.s.stages {
		if st.Position > top {
			top = st.Position
		}
	}
	return top, nil
}

func (r stageRepo) mutate(id string, fn func(*entity.PipelineStage)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, st := find(r.s.stages, func(x *entity.PipelineStage) bool { return x.ID == id })
	if st == nil {
		return domain.ErrNotFound
	}
	fn(st)
	return nil
}

func (r stageRepo) Rename(_ context.Context, id, name string) error {
	return r.mutate(id, func(x *entity.PipelineStage) { x.Name = name })
}

func (r stageRepo) UpdatePosition(_ context.Context, id string, position int) error {
	return r.mutate(id, func(x *entity.PipelineStage) { x.Position = position })
}

func (r stageRepo) ClearDefault(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.stages {
		st.IsDefault = false
	}
	return nil
}

func (r stageRepo) MarkDefault(_ context.Context, id string) error {
	return r.mutate(id, func(x *entity.PipelineStage) { x.IsDefault = true })
}

func (r stageRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, _ := find(r.s.stages, func(x *entity.PipelineStage) bool { return x.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.stages = slices.Delete(r.s.stages, i, i+1)
	return nil
}
