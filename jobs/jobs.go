// Package jobs runs the periodic maintenance tasks
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/metrics"
)

// ResetTokenPurger clears password reset tokens that expired before now
type ResetTokenPurger interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// Manager owns the cron scheduler
type Manager struct {
	cron    *cron.Cron
	timeout time.Duration
}

// NewManager creates a stopped scheduler in local time
func NewManager() *Manager {
	return &Manager{
		cron:    cron.New(cron.WithLocation(time.Local)),
		timeout: time.Minute,
	}
}

// AddResetTokenPurge schedules the reset token purge on spec
func (m *Manager) AddResetTokenPurge(spec string, purger ResetTokenPurger) (cron.EntryID, error) {
	id, err := m.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		if _, err := PurgeResetTokens(ctx, purger, time.Now()); err != nil {
			klog.ErrorS(err, "Reset token purge failed")
		}
	})
	if err != nil {
		klog.Error(err)
		return -1, err
	}
	klog.InfoS("Scheduled reset token purge", "spec", spec)
	return id, nil
}

// Start runs the scheduler in its own goroutine
func (m *Manager) Start() {
	m.cron.Start()
}

// Stop halts the scheduler; the returned context is done once running jobs finish
func (m *Manager) Stop() context.Context {
	return m.cron.Stop()
}

// PurgeResetTokens runs one purge pass
func PurgeResetTokens(ctx context.Context, purger ResetTokenPurger, now time.Time) (int64, error) {
	n, err := purger.ClearExpiredResetTokens(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.ResetTokensPurged.Add(float64(n))
		klog.InfoS("Purged expired reset tokens", "count", n)
	}
	return n, nil
}
