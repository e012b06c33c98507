package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/repository"
	"SentiTrade/pkg/logger"

	"github.com/gocarina/gocsv"
)

const (
	SourceTrades    = "trades"
	SourceSentiment = "sentiment"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource reads the trade history and Fear & Greed files. Columns are
// matched by header name; unknown columns are ignored.
type CSVSource struct {
	log     *logger.Logger
	metrics repository.Metrics
}

// NewCSVSource creates a CSV-backed TradeSource.
func NewCSVSource(log *logger.Logger, m repository.Metrics) *CSVSource {
	return &CSVSource{log: log, metrics: m}
}

var _ repository.TradeSource = (*CSVSource)(nil)

func (s *CSVSource) LoadTrades(ctx context.Context, path string) ([]models.RawTrade, error) {
	var rows []*models.RawTrade
	if err := s.decode(ctx, SourceTrades, path, &rows); err != nil {
		return nil, err
	}

	out := make([]models.RawTrade, 0, len(rows))
	for i, r := range rows {
		if r == nil {
			continue
		}
		r.Line = i + 2
		out = append(out, *r)
	}
	s.loaded(SourceTrades, path, len(out))
	return out, nil
}

func (s *CSVSource) LoadSentiment(ctx context.Context, path string) ([]models.RawSentiment, error) {
	var rows []*models.RawSentiment
	if err := s.decode(ctx, SourceSentiment, path, &rows); err != nil {
		return nil, err
	}

	out := make([]models.RawSentiment, 0, len(rows))
	for i, r := range rows {
		if r == nil {
			continue
		}
		r.Line = i + 2
		out = append(out, *r)
	}
	s.loaded(SourceSentiment, path, len(out))
	return out, nil
}

func (s *CSVSource) decode(ctx context.Context, source, path string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &models.MissingFileError{Path: path, Err: err}
		}
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer f.Close()

	r, err := skipBOM(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	if err := gocsv.Unmarshal(r, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", source, path, err)
	}

	if s.metrics != nil {
		s.metrics.RecordStage("load_"+source, time.Since(start))
	}
	return nil
}

func (s *CSVSource) loaded(source, path string, n int) {
	if s.metrics != nil {
		s.metrics.RecordRowsLoaded(source, n)
	}
	if s.log != nil {
		s.log.Info("rows loaded",
			logger.String("source", source),
			logger.String("path", path),
			logger.Int("rows", n),
		)
	}
}

// skipBOM drops a leading UTF-8 byte order mark so the first header matches.
func skipBOM(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br, nil
}
