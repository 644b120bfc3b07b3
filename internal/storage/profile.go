package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rkotecha/fireplan/internal/common"
	"github.com/rkotecha/fireplan/internal/model"
)

// SaveProfile upserts the single user profile row.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, p model.Profile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, current_age, fire_age, dependents,
			current_monthly_expense, current_net_worth, monthly_savings,
			household_income, lifestyle_type, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			current_age = excluded.current_age,
			fire_age = excluded.fire_age,
			dependents = excluded.dependents,
			current_monthly_expense = excluded.current_monthly_expense,
			current_net_worth = excluded.current_net_worth,
			monthly_savings = excluded.monthly_savings,
			household_income = excluded.household_income,
			lifestyle_type = excluded.lifestyle_type,
			updated_at = CURRENT_TIMESTAMP`,
		p.CurrentAge, p.FireAge, p.Dependents,
		p.CurrentMonthlyExpense, p.CurrentNetWorth, p.MonthlySavings,
		p.HouseholdIncome, string(p.LifestyleType))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile loads the user profile. Returns common.ErrNotFound if none has
// been saved yet.
func (s *SQLiteStorage) GetProfile(ctx context.Context) (*model.Profile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var p model.Profile
	var lifestyle string
	err := s.db.QueryRowContext(ctx, `
		SELECT current_age, fire_age, dependents, current_monthly_expense,
			current_net_worth, monthly_savings, household_income,
			lifestyle_type, updated_at
		FROM profiles WHERE id = 1`).
		Scan(&p.CurrentAge, &p.FireAge, &p.Dependents, &p.CurrentMonthlyExpense,
			&p.CurrentNetWorth, &p.MonthlySavings, &p.HouseholdIncome,
			&lifestyle, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.LifestyleType = model.LifestyleType(lifestyle)
	return &p, nil
}

// RecordMetrics appends a computed metrics row to the history table.
func (s *SQLiteStorage) RecordMetrics(ctx context.Context, m model.Metrics) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metrics_history (lifestyle_inflation_adjustment,
			safe_withdrawal_rate, required_corpus, projected_corpus,
			is_on_track, monthly_savings_needed, surplus_deficit, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.LifestyleInflationAdjustment, m.SafeWithdrawalRate,
		m.RequiredCorpus, m.ProjectedCorpusAtFire,
		m.IsOnTrack, m.MonthlySavingsNeeded, m.SurplusDeficit, m.ComputedAt)
	if err != nil {
		return fmt.Errorf("failed to record metrics: %w", err)
	}
	return nil
}

// LatestMetrics returns the most recently recorded metrics, or
// common.ErrNotFound when the history is empty.
func (s *SQLiteStorage) LatestMetrics(ctx context.Context) (*model.Metrics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var m model.Metrics
	err := s.db.QueryRowContext(ctx, `
		SELECT lifestyle_inflation_adjustment, safe_withdrawal_rate,
			required_corpus, projected_corpus, is_on_track,
			monthly_savings_needed, surplus_deficit, computed_at
		FROM metrics_history
		ORDER BY id DESC LIMIT 1`).
		Scan(&m.LifestyleInflationAdjustment, &m.SafeWithdrawalRate,
			&m.RequiredCorpus, &m.ProjectedCorpusAtFire, &m.IsOnTrack,
			&m.MonthlySavingsNeeded, &m.SurplusDeficit, &m.ComputedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("metrics: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest metrics: %w", err)
	}
	return &m, nil
}
