package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/univesp-PI-III/merenda-certa/internal/domain"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/entity"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/inventory"
	"github.com/univesp-PI-III/merenda-certa/internal/domain/repository"
)

type meterRepo struct {
	s *Store
}

func (r *meterRepo) Create(_ context.Context, m *entity.Meter) error {
	return r.s.write(nil, func(st *state) error {
		for _, existing := range st.meters {
			if existing.MeterCode == m.MeterCode {
				return domain.ErrDuplicateMeterCode
			}
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		m.ID = st.nextID()
		st.meters[m.ID] = *m
		return nil
	})
}

func (r *meterRepo) GetByID(_ context.Context, id int64) (*entity.Meter, error) {
	var out *entity.Meter
	r.s.read(nil, func(st *state) {
		if m, ok := st.meters[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *meterRepo) GetByCode(_ context.Context, code string) (*entity.Meter, error) {
	var out *entity.Meter
	r.s.read(nil, func(st *state) {
		for _, m := range st.meters {
			if m.MeterCode == code {
				out = &m
				return
			}
		}
	})
	return out, nil
}

func (r *meterRepo) Update(_ context.Context, m *entity.Meter) error {
	return r.s.write(nil, func(st *state) error {
		existing, ok := st.meters[m.ID]
		if !ok {
			return domain.ErrUnknownMeter
		}
		existing.Name = m.Name
		existing.MinTemp = m.MinTemp
		existing.MaxTemp = m.MaxTemp
		st.meters[m.ID] = existing
		return nil
	})
}

func (r *meterRepo) ListWithLastReading(_ context.Context) ([]*entity.MeterStatus, error) {
	var out []*entity.MeterStatus
	r.s.read(nil, func(st *state) {
		last := make(map[int64]entity.Reading, len(st.meters))
		for _, rd := range st.readings {
			prev, ok := last[rd.MeterID]
			if !ok || !rd.RecordedAt.Before(prev.RecordedAt) {
				last[rd.MeterID] = rd
			}
		}
		for _, m := range st.meters {
			ms := &entity.MeterStatus{Meter: m}
			if rd, ok := last[m.ID]; ok {
				temp, status, at := rd.TemperatureC, rd.Status, rd.RecordedAt
				ms.LastTemperatureC = &temp
				ms.LastStatus = &status
				ms.LastRecordedAt = &at
			}
			out = append(out, ms)
		}
	})
	slices.SortFunc(out, func(a, b *entity.MeterStatus) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

type readingRepo struct {
	s *Store
}

func (r *readingRepo) Create(_ context.Context, rd *entity.Reading) error {
	return r.s.write(nil, func(st *state) error {
		m, ok := st.meters[rd.MeterID]
		if !ok {
			return domain.ErrUnknownMeter
		}
		rd.ID = st.nextID()
		rd.MeterName, rd.MeterCode = m.Name, m.MeterCode
		st.readings = append(st.readings, *rd)
		return nil
	})
}

func (r *readingRepo) List(_ context.Context, filter repository.ReadingFilter) ([]*entity.Reading, error) {
	var out []*entity.Reading
	r.s.read(nil, func(st *state) {
		for _, rd := range st.readings {
			day := inventory.DateOf(rd.RecordedAt.In(r.s.loc))
			if filter.From != nil && day.Before(*filter.From) {
				continue
			}
			if filter.To != nil && day.After(*filter.To) {
				continue
			}
			if filter.MeterID != nil && rd.MeterID != *filter.MeterID {
				continue
			}
			m := st.meters[rd.MeterID]
			rd.MeterName, rd.MeterCode, rd.MinTemp, rd.MaxTemp = m.Name, m.MeterCode, m.MinTemp, m.MaxTemp
			out = append(out, &rd)
		}
	})
	slices.SortStableFunc(out, func(a, b *entity.Reading) int {
		if c := b.RecordedAt.Compare(a.RecordedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return limit(out, filter.Limit), nil
}
