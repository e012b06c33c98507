package usecase

import (
	"context"
	"sort"
	"time"

	"SentiTrade/internal/domain/models"
	"SentiTrade/internal/domain/repository"
	"SentiTrade/pkg/logger"
	"SentiTrade/pkg/util"

	"github.com/shopspring/decimal"
)

// AlignReport counts what happened to each input row during alignment.
type AlignReport struct {
	TradesRead    int            `json:"trades_read"`
	SentimentRead int            `json:"sentiment_read"`
	Merged        int            `json:"merged"`
	Dropped       map[string]int `json:"dropped"`
}

// DroppedTotal is the number of rows discarded for any reason.
func (r AlignReport) DroppedTotal() int {
	n := 0
	for _, v := range r.Dropped {
		n += v
	}
	return n
}

// Aligner joins trades onto the sentiment reading of their calendar day.
type Aligner struct {
	log     *logger.Logger
	metrics repository.Metrics
}

func NewAligner(log *logger.Logger, m repository.Metrics) *Aligner {
	return &Aligner{log: log, metrics: m}
}

// Align parses both tables, left-joins trades on date and keeps only
// matched rows. The result is stably sorted by timestamp and carries the
// running sum of PnL.
func (a *Aligner) Align(ctx context.Context, trades []models.RawTrade, sentiment []models.RawSentiment) ([]models.MergedRecord, AlignReport, error) {
	start := time.Now()
	rep := AlignReport{
		TradesRead:    len(trades),
		SentimentRead: len(sentiment),
		Dropped:       map[string]int{},
	}

	byDate := a.indexSentiment(sentiment, rep.Dropped)

	merged := make([]models.MergedRecord, 0, len(trades))
	for i, t := range trades {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, rep, err
			}
		}

		ts, ok := util.ParseTradeTimestamp(t.Timestamp)
		if !ok {
			a.drop(rep.Dropped, models.ReasonBadTimestamp, &models.UnparseableRowError{
				Source: "trades", Line: t.Line, Field: "Timestamp IST", Value: t.Timestamp,
			})
			continue
		}
		pnl, err := parseDecimal(t.ClosedPnL)
		if err != nil {
			a.drop(rep.Dropped, models.ReasonBadNumber, &models.UnparseableRowError{
				Source: "trades", Line: t.Line, Field: "Closed PnL", Value: t.ClosedPnL,
			})
			continue
		}
		size, err := parseDecimal(t.SizeUSD)
		if err != nil {
			a.drop(rep.Dropped, models.ReasonBadNumber, &models.UnparseableRowError{
				Source: "trades", Line: t.Line, Field: "Size USD", Value: t.SizeUSD,
			})
			continue
		}

		day := models.DateOf(ts)
		s, ok := byDate[day]
		if !ok {
			rep.Dropped[models.ReasonUnmatchedDate]++
			continue
		}

		merged = append(merged, models.MergedRecord{
			Timestamp: ts,
			Date:      day,
			DayOfWeek: day.Weekday().String(),
			Coin:      t.Coin,
			Side:      t.Side,
			SizeUSD:   size,
			ClosedPnL: pnl,
			FGValue:   s.Value,
			FGClass:   s.Class,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})
	Accumulate(merged)

	rep.Merged = len(merged)
	a.report(rep, time.Since(start))
	return merged, rep, nil
}

// Accumulate fills CumulativePnL as the running sum of ClosedPnL in slice order.
func Accumulate(records []models.MergedRecord) {
	running := decimal.Zero
	for i := range records {
		running = running.Add(records[i].ClosedPnL)
		records[i].CumulativePnL = running
	}
}

// indexSentiment maps each calendar day to its reading. The first row of a
// repeated date wins.
func (a *Aligner) indexSentiment(rows []models.RawSentiment, dropped map[string]int) map[models.Date]models.Sentiment {
	out := make(map[models.Date]models.Sentiment, len(rows))
	for _, r := range rows {
		t, ok := util.ParseCalendarDate(r.Date)
		if !ok {
			a.drop(dropped, models.ReasonBadSentimentDate, &models.UnparseableRowError{
				Source: "sentiment", Line: r.Line, Field: "date", Value: r.Date,
			})
			continue
		}
		v, ok := util.ParseFloat(r.Value)
		if !ok {
			a.drop(dropped, models.ReasonBadSentimentVal, &models.UnparseableRowError{
				Source: "sentiment", Line: r.Line, Field: "value", Value: r.Value,
			})
			continue
		}
		band, ok := models.ParseBand(r.Classification)
		if !ok {
			a.drop(dropped, models.ReasonUnknownBand, &models.UnparseableRowError{
				Source: "sentiment", Line: r.Line, Field: "classification", Value: r.Classification,
			})
			continue
		}

		day := models.DateOf(t)
		if _, seen := out[day]; seen {
			dropped[models.ReasonDuplicateDate]++
			continue
		}
		out[day] = models.Sentiment{Date: day, Value: v, Class: band}
	}
	return out
}

func (a *Aligner) drop(dropped map[string]int, reason string, rowErr *models.UnparseableRowError) {
	dropped[reason]++
	if a.log == nil {
		return
	}
	a.log.Debug("row dropped", logger.String("reason", reason), logger.Error(rowErr))
	a.log.Quiet("rows dropped", logger.String("reason", reason), logger.String("source", rowErr.Source))
}

func (a *Aligner) report(rep AlignReport, took time.Duration) {
	if a.metrics != nil {
		for reason, n := range rep.Dropped {
			a.metrics.RecordRowsDropped(reason, n)
		}
		a.metrics.RecordStage("align", took)
	}
	if a.log != nil {
		a.log.Info("alignment complete",
			logger.Int("trades", rep.TradesRead),
			logger.Int("sentiment", rep.SentimentRead),
			logger.Int("merged", rep.Merged),
			logger.Int("dropped", rep.DroppedTotal()),
			logger.Any("dropped_by_reason", rep.Dropped),
		)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(util.CleanNumber(s))
}
