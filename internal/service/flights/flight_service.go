package flights

import (
	"context"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/Domenick1991/planepal/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.ScheduledFlight, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduledFlight, error)
	Airlines(ctx context.Context) ([]domain.Airline, error)
	Airports(ctx context.Context) ([]domain.Airport, error)
}

type Syncer interface {
	SyncFlights(ctx context.Context)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.ScheduledFlight, error)
	SetFlights(ctx context.Context, flights []domain.ScheduledFlight) error
	GetAirlines(ctx context.Context) ([]domain.Airline, error)
	SetAirlines(ctx context.Context, airlines []domain.Airline) error
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
}

type FlightService struct {
	catalog repository.CatalogRepository
	syncer  Syncer
	cache   Cache
}

func NewFlightService(catalog repository.CatalogRepository, syncer Syncer, cache Cache) *FlightService {
	return &FlightService{catalog: catalog, syncer: syncer, cache: cache}
}

// List pulls fresh flights from the provider first, then reads the catalog.
// A failed sync degrades to the last ingested data, and a failed catalog read
// degrades to the last cached list.
func (s *FlightService) List(ctx context.Context) ([]domain.ScheduledFlight, error) {
	if s.syncer != nil {
		s.syncer.SyncFlights(ctx)
	}

	flights, err := s.catalog.ListFlights(ctx)
	if err != nil {
		if s.cache != nil {
			if cached, cacheErr := s.cache.GetFlights(ctx); cacheErr == nil && cached != nil {
				return cached, nil
			}
		}
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.ScheduledFlight, error) {
	return s.catalog.GetFlightByID(ctx, id)
}

func (s *FlightService) Airlines(ctx context.Context) ([]domain.Airline, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirlines(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airlines, err := s.catalog.ListAirlines(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirlines(ctx, airlines)
	}
	return airlines, nil
}

func (s *FlightService) Airports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.catalog.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

var _ FlightUseCase = (*FlightService)(nil)
