package service

import (
	"context"
	"fmt"

	"github.com/tabviz/tabviz/internal/dataset"
	"github.com/tabviz/tabviz/internal/domain"
	"github.com/tabviz/tabviz/internal/profile"
	"github.com/tabviz/tabviz/internal/session"
	"github.com/tabviz/tabviz/internal/suggest"
	"go.uber.org/zap"
)

// AnalysisService handles the upload flow: parse, profile, cache the
// session and request visualization suggestions.
type AnalysisService struct {
	store        *session.Store
	orchestrator *suggest.Orchestrator
	logger       *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	store *session.Store,
	orchestrator *suggest.Orchestrator,
	logger *zap.Logger,
) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		store:        store,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Analyze ingests an uploaded file and returns the session handle,
// the dataset profile and the model's suggestions. The session is
// committed before the model call, so a suggestion failure leaves the
// handle usable for chart-data requests.
func (s *AnalysisService) Analyze(ctx context.Context, filename string, data []byte) (*domain.UploadResponse, error) {
	fileType := dataset.DetectFileType(filename)
	if !dataset.IsSupported(fileType) {
		return nil, fmt.Errorf("%w: %q, only .csv and .xlsx are accepted", domain.ErrUnsupportedFileType, fileType)
	}

	ds, err := dataset.Parse(data, fileType)
	if err != nil {
		return nil, err
	}

	prof, err := profile.Build(ds)
	if err != nil {
		return nil, err
	}

	sessionID := s.store.Put(ds, prof)
	s.logger.Info("dataset ingested",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
		zap.Int("rows", prof.Rows),
		zap.Int("columns", prof.Cols),
	)

	suggestions, err := s.orchestrator.Suggest(ctx, ds, prof)
	if err != nil {
		s.logger.Warn("suggestion generation failed, session retained",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	return &domain.UploadResponse{
		Message:    "file processed and analyzed",
		SessionID:  sessionID,
		Filename:   filename,
		FileType:   fileType,
		DataFrame:  dataFrameInfo(ds, prof),
		AIAnalysis: domain.AIAnalysis{Suggestions: suggestions},
	}, nil
}

func dataFrameInfo(ds *domain.Dataset, p *domain.Profile) domain.DataFrameInfo {
	dtypes := make(map[string]domain.DType, len(p.Columns))
	nulls := make(map[string]int, len(p.Columns))
	for name, info := range p.Columns {
		dtypes[name] = info.DType
		nulls[name] = info.NullCount
	}

	return domain.DataFrameInfo{
		Shape:              domain.Shape{Rows: p.Rows, Columns: p.Cols},
		Columns:            p.ColumnNames,
		ColumnsInfo:        p.Columns,
		DTypes:             dtypes,
		StatisticalSummary: p.Numeric,
		CategoricalSummary: p.Categorical,
		Info:               infoSummary(ds, p),
		NullCounts:         nulls,
		SampleData:         p.Sample,
	}
}

func infoSummary(ds *domain.Dataset, p *domain.Profile) domain.InfoSummary {
	numeric := make([]string, 0)
	categorical := make([]string, 0)
	datetime := make([]string, 0)
	for _, name := range p.ColumnNames {
		switch p.Columns[name].DType {
		case domain.DTypeNumeric:
			numeric = append(numeric, name)
		case domain.DTypeCategorical:
			categorical = append(categorical, name)
		case domain.DTypeDatetime:
			datetime = append(datetime, name)
		}
	}

	return domain.InfoSummary{
		TotalRows:          p.Rows,
		TotalColumns:       p.Cols,
		MemoryUsage:        fmt.Sprintf("%.2f KB", float64(approxMemoryBytes(ds))/1024),
		NumericColumns:     numeric,
		CategoricalColumns: categorical,
		DatetimeColumns:    datetime,
	}
}

// approxMemoryBytes estimates the dataset's in-memory footprint:
// one interface slot per cell plus string payloads.
func approxMemoryBytes(ds *domain.Dataset) int {
	bytes := 0
	for _, col := range ds.Columns {
		bytes += 16 * len(col.Values)
		for _, v := range col.Values {
			if s, ok := v.(string); ok {
				bytes += len(s)
			}
		}
	}
	return bytes
}
