package api

import (
	"context"
	"net/http"
	"time"
)

// DashboardStats are the aggregate numbers shown on the dashboard.
type DashboardStats struct {
	UserCount            int     `json:"userCount"`
	RefereeCount         int     `json:"refereeCount"`
	ActiveReferralsCount int     `json:"activeReferralsCount"`
	TotalCommissions     float64 `json:"totalCommissions"`
}

// GetDashboardStats fetches the aggregate dashboard numbers.
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CommissionUser identifies who earned a commission.
type CommissionUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ReferralUUID string `json:"referral_uuid"`
}

// CommissionLog is one commission ledger entry.
type CommissionLog struct {
	ID        int64          `json:"id"`
	User      CommissionUser `json:"user"`
	Amount    float64        `json:"amount"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ListCommissionLogs fetches the commission ledger.
func (c *Client) ListCommissionLogs(ctx context.Context) ([]CommissionLog, error) {
	var logs []CommissionLog
	if err := c.do(ctx, http.MethodGet, "/commission-logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
