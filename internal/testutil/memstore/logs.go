package memstore

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

type logRepo struct{ s *Store }

func (r logRepo) Append(_ context.Context, l *entity.StageLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAppend != nil {
		return r.s.FailAppend
	}
	r.s.logs = append(r.s.logs, cloneOne(l))
	return nil
}

func (r logRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.StageLogDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.StageLogDetail{}
	for _, l := range r.s.logs {
		if l.CustomerID != customerID {
			continue
		}
		d := &entity.StageLogDetail{StageLog: *l}
		if l.PipelineStageID != nil {
			if _, st := find(r.s.stages, func(x *entity.PipelineStage) bool { return x.ID == *l.PipelineStageID }); st != nil {
				d.StageName = &st.Name
			}
		}
		d.EmployeeName = r.userName(l.EmployeeID)
		d.UserName = r.userName(l.UserID)
		out = append(out, d)
	}
	return out, nil
}

func (r logRepo) userName(id *string) *string {
	if id == nil {
		return nil
	}
	_, u := find(r.s.users, func(x *entity.User) bool { return x.ID == *id })
	if u == nil {
		return nil
	}
	name := u.Name
	return &name
}

func (r logRepo) latest(customerID string, match func(*entity.StageLog) bool) *entity.StageLog {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		l := r.s.logs[i]
		if l.CustomerID == customerID && match(l) {
			return cloneOne(l)
		}
	}
	return nil
}

func (r logRepo) Latest(_ context.Context, customerID string) (*entity.StageLog, error) {
	return r.latest(customerID, func(*entity.StageLog) bool { return true }), nil
}

func (r logRepo) LatestWithEmployee(_ context.Context, customerID string) (*entity.StageLog, error) {
	return r.latest(customerID, func(l *entity.StageLog) bool { return l.EmployeeID != nil }), nil
}

func (r logRepo) CountByCustomer(_ context.Context, customerID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, l := range r.s.logs {
		if l.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}
