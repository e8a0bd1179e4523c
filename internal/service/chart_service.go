package service

import (
	"github.com/tabviz/tabviz/internal/aggregate"
	"github.com/tabviz/tabviz/internal/domain"
	"github.com/tabviz/tabviz/internal/session"
)

// ChartService serves chart-ready aggregates against cached sessions.
type ChartService struct {
	store *session.Store
}

// NewChartService creates a new chart service
func NewChartService(store *session.Store) *ChartService {
	return &ChartService{store: store}
}

// ChartData looks up the session and computes the aggregate payload
// for the requested chart kind.
func (s *ChartService) ChartData(req *domain.ChartDataRequest) (*domain.ChartDataResponse, error) {
	sess, err := s.store.Get(req.SessionID)
	if err != nil {
		return nil, err
	}

	data, err := aggregate.Aggregate(sess.Dataset, req.ChartKind, req.Parameters)
	if err != nil {
		return nil, err
	}

	return &domain.ChartDataResponse{
		ChartKind:  req.ChartKind,
		Data:       data,
		Parameters: req.Parameters,
	}, nil
}
