package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
)

const activePeriodKeyPrefix = "payroll-budget:active-period:"

type activePeriodCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewActivePeriodCache stores each company's open budget period in Redis for ttl.
func NewActivePeriodCache(client *redis.Client, ttl time.Duration) budget.ActivePeriodCache {
	return &activePeriodCache{client: client, ttl: ttl}
}

type cachedPeriod struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Year        int        `json:"year"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	ClosedBy    *string    `json:"closed_by,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func key(companyID string) string {
	return activePeriodKeyPrefix + companyID
}

func (c *activePeriodCache) Get(ctx context.Context, companyID string) (budget.BudgetPeriod, bool, error) {
	payload, err := c.client.Get(ctx, key(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return budget.BudgetPeriod{}, false, nil
		}
		return budget.BudgetPeriod{}, false, fmt.Errorf("cache: get active period: %w", err)
	}

	var stored cachedPeriod
	if err := json.Unmarshal(payload, &stored); err != nil {
		return budget.BudgetPeriod{}, false, fmt.Errorf("cache: decode active period: %w", err)
	}

	start, err := calendar.Parse(stored.StartDate)
	if err != nil {
		return budget.BudgetPeriod{}, false, fmt.Errorf("cache: decode active period: %w", err)
	}
	end, err := calendar.Parse(stored.EndDate)
	if err != nil {
		return budget.BudgetPeriod{}, false, fmt.Errorf("cache: decode active period: %w", err)
	}

	return budget.BudgetPeriod{
		ID:          stored.ID,
		CompanyID:   stored.CompanyID,
		Year:        stored.Year,
		StartDate:   start,
		EndDate:     end,
		Status:      budget.Status(stored.Status),
		Description: stored.Description,
		ClosedBy:    stored.ClosedBy,
		ClosedAt:    stored.ClosedAt,
		CreatedAt:   stored.CreatedAt,
		UpdatedAt:   stored.UpdatedAt,
	}, true, nil
}

func (c *activePeriodCache) Set(ctx context.Context, p budget.BudgetPeriod) error {
	data, err := json.Marshal(cachedPeriod{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Year:        p.Year,
		StartDate:   calendar.Format(p.StartDate),
		EndDate:     calendar.Format(p.EndDate),
		Status:      string(p.Status),
		Description: p.Description,
		ClosedBy:    p.ClosedBy,
		ClosedAt:    p.ClosedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key(p.CompanyID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set active period: %w", err)
	}
	return nil
}

func (c *activePeriodCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.client.Del(ctx, key(companyID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache: invalidate active period: %w", err)
	}
	return nil
}
