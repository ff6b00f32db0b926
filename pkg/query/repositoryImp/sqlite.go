package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"indash/pkg/metrics"
	"indash/pkg/query/repository"
)

type sqliteExecutor struct {
	db      *gorm.DB
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewSQLite runs statements against a local replica holding the tables of
// all three sources.
func NewSQLite(db *gorm.DB, log *zap.Logger, m *metrics.Metrics) repository.Executor {
	return &sqliteExecutor{db: db, log: log.Named("query.sqlite"), metrics: m}
}

func (s *sqliteExecutor) Execute(ctx context.Context, sql string, src repository.Source) (*repository.Response, error) {
	if err := repository.CheckReadOnly(sql); err != nil {
		s.metrics.ObserveQuery(string(src), "rejected", 0)
		return nil, err
	}
	start := time.Now()
	data, err := s.scan(ctx, sql)
	s.metrics.ObserveQuery(string(src), outcome(err), time.Since(start))
	if err != nil {
		s.log.Debug("query failed", zap.String("source", string(src)), zap.Error(err))
		return nil, fmt.Errorf("%s query: %w: %v", src, repository.ErrQueryFailed, err)
	}
	return &repository.Response{Status: repository.StatusSuccess, Data: data, Count: len(data)}, nil
}

func (s *sqliteExecutor) scan(ctx context.Context, sql string) ([]repository.Row, error) {
	rows, err := s.db.WithContext(ctx).Raw(sql).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	data := []repository.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(repository.Row, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		data = append(data, row)
	}
	return data, rows.Err()
}
