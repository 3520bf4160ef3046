package service

import (
	"context"
	"math"
	"sort"
	"time"

	"dashboard-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

const (
	defaultStatsRangeHours = 24
	maxStatsWorkflows      = 20
)

type WorkflowRegistry interface {
	List(ctx context.Context) ([]domain.Workflow, error)
}

type AnalyticsService struct {
	workflows WorkflowRegistry
	events    EventRepository
}

func NewAnalyticsService(workflows WorkflowRegistry, events EventRepository) *AnalyticsService {
	return &AnalyticsService{
		workflows: workflows,
		events:    events,
	}
}

// ComputeWorkflowStats reduces the task_executed events of the last
// rangeHours into per-workflow run statistics. Every registered workflow
// gets a bucket, so workflows without runs still appear (status "paused").
// Events referencing an unknown workflow are skipped. Output is the top 20
// workflows by run count, ties keeping registry order.
func (s *AnalyticsService) ComputeWorkflowStats(ctx context.Context, rangeHours int) ([]domain.WorkflowStats, error) {
	if rangeHours <= 0 {
		rangeHours = defaultStatsRangeHours
	}

	workflows, err := s.workflows.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list workflows for stats")
		return nil, err
	}

	now := time.Now().UTC()
	start := now.Add(-time.Duration(rangeHours) * time.Hour)
	events, err := s.events.Find(ctx, domain.EventFilter{
		Type:  domain.EventTaskExecuted,
		Start: &start,
		End:   &now,
	})
	if err != nil {
		log.WithError(err).Error("Failed to query task executions for stats")
		return nil, err
	}

	type bucket struct {
		stats     domain.WorkflowStats
		durations []float64
	}

	buckets := make([]*bucket, 0, len(workflows))
	byID := make(map[string]*bucket, len(workflows))
	for _, wf := range workflows {
		b := &bucket{stats: domain.WorkflowStats{
			WorkflowID: wf.ID,
			Name:       wf.Name,
			Status:     domain.StatsStatusPaused,
		}}
		buckets = append(buckets, b)
		byID[wf.ID] = b
	}

	for i := range events {
		e := &events[i]
		b, ok := byID[e.RelatedWorkflowID]
		if !ok {
			continue
		}
		b.stats.Runs++
		switch e.Severity {
		case domain.SeveritySuccess:
			b.stats.Successes++
		case domain.SeverityError:
			b.stats.Failures++
		}
		if b.stats.LastRun == nil || e.Timestamp.After(*b.stats.LastRun) {
			ts := e.Timestamp
			b.stats.LastRun = &ts
		}
		if e.ExecutionTime != nil && !math.IsNaN(*e.ExecutionTime) && !math.IsInf(*e.ExecutionTime, 0) {
			b.durations = append(b.durations, *e.ExecutionTime)
		}
	}

	results := make([]domain.WorkflowStats, 0, len(buckets))
	for _, b := range buckets {
		st := b.stats
		if st.Runs > 0 {
			st.SuccessRate = math.Round(float64(st.Successes)/float64(st.Runs)*1000) / 10
		}
		if len(b.durations) > 0 {
			var sum float64
			for _, d := range b.durations {
				sum += d
			}
			mean := sum / float64(len(b.durations))
			st.AvgDurationMinutes = math.Round(mean/60000*10) / 10
		}
		switch {
		case st.Failures > 0 && st.Failures >= st.Successes:
			st.Status = domain.StatsStatusFailed
		case st.Successes > 0:
			st.Status = domain.StatsStatusSuccess
		default:
			st.Status = domain.StatsStatusPaused
		}
		results = append(results, st)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Runs > results[j].Runs
	})
	if len(results) > maxStatsWorkflows {
		results = results[:maxStatsWorkflows]
	}
	return results, nil
}
