package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/validation"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
	"github.com/mandu619/apa-depto-personal/internal/domain/repository"
)

const (
	dashboardWindowDays = 30
	dashboardLatest     = 6 // filas de "últimas entradas" y "últimas asignaciones"
)

// DashboardUseCase genera los indicadores de la pantalla de inicio.
type DashboardUseCase struct {
	entries   repository.StockEntryRepository
	movements repository.MovementRepository
	requests  repository.RequestRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(entries repository.StockEntryRepository, movements repository.MovementRepository, requests repository.RequestRepository) *DashboardUseCase {
	return &DashboardUseCase{entries: entries, movements: movements, requests: requests, now: time.Now}
}

// GetSummary cuenta entradas, asignaciones y mermas de los últimos 30 días, solicitudes
// pendientes, y trae las últimas entradas y asignaciones. Las consultas van en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	since := uc.now().AddDate(0, 0, -dashboardWindowDays).Format(validation.DateLayout)
	out := &dto.DashboardResponse{Since: since}

	var (
		latestEntries     []*entity.StockEntry
		latestAssignments []*entity.Movement
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.entries.CountSince(ctx, since)
		if err != nil {
			return fmt.Errorf("dashboard: entradas: %w", err)
		}
		out.Entries = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.movements.CountSince(ctx, entity.MovementAssignment, since)
		if err != nil {
			return fmt.Errorf("dashboard: asignaciones: %w", err)
		}
		out.Assignments = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.movements.CountSince(ctx, entity.MovementScrap, since)
		if err != nil {
			return fmt.Errorf("dashboard: mermas: %w", err)
		}
		out.Scrap = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.requests.CountByStatus(ctx, entity.RequestPending)
		if err != nil {
			return fmt.Errorf("dashboard: solicitudes: %w", err)
		}
		out.PendingRequests = n
		return nil
	})
	g.Go(func() error {
		list, err := uc.entries.List(ctx, entity.EntryFilter{Limit: dashboardLatest})
		if err != nil {
			return fmt.Errorf("dashboard: últimas entradas: %w", err)
		}
		latestEntries = list
		return nil
	})
	g.Go(func() error {
		list, err := uc.movements.List(ctx, entity.MovementAssignment, entity.MovementFilter{Limit: dashboardLatest})
		if err != nil {
			return fmt.Errorf("dashboard: últimas asignaciones: %w", err)
		}
		latestAssignments = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.LatestEntries = make([]dto.EntryResponse, 0, len(latestEntries))
	for _, e := range latestEntries {
		out.LatestEntries = append(out.LatestEntries, dto.FromEntry(e))
	}
	out.LatestAssignments = make([]dto.MovementResponse, 0, len(latestAssignments))
	for _, m := range latestAssignments {
		out.LatestAssignments = append(out.LatestAssignments, dto.FromMovement(m))
	}
	return out, nil
}
