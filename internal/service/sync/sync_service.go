package sync

import (
	"context"
	"encoding/json"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/Domenick1991/planepal/internal/provider"
	"github.com/Domenick1991/planepal/internal/repository"
	"github.com/Domenick1991/planepal/pkg/logger"
	"github.com/Domenick1991/planepal/pkg/metrics"
)

type CatalogSyncer interface {
	SyncAirlines(ctx context.Context)
	SyncAirports(ctx context.Context)
	SyncFlights(ctx context.Context)
	SyncAll(ctx context.Context)
}

type Provider interface {
	Load(ctx context.Context, resource string, params map[string]string) ([]byte, error)
}

type Cache interface {
	InvalidateCatalog(ctx context.Context) error
}

// SyncService pulls the external catalog into the local store. Every tick
// appends what the provider returned; there is no dedup key in the provider
// contract, so records are never upserted.
type SyncService struct {
	provider Provider
	catalog  repository.CatalogRepository
	cache    Cache
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewSyncService(p Provider, catalog repository.CatalogRepository, cache Cache, log logger.Logger, m *metrics.Metrics) *SyncService {
	return &SyncService{provider: p, catalog: catalog, cache: cache, log: log, metrics: m}
}

// SyncAll ingests airlines, then airports, then flights. A failure in one
// resource never blocks the others.
func (s *SyncService) SyncAll(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.SyncRuns.Inc()
	}
	s.SyncAirlines(ctx)
	s.SyncAirports(ctx)
	s.SyncFlights(ctx)
}

func (s *SyncService) SyncAirlines(ctx context.Context) {
	body, err := s.provider.Load(ctx, provider.ResourceAirlines, nil)
	if err != nil {
		s.fail(provider.ResourceAirlines, err)
		return
	}

	var envelope provider.Envelope[provider.AirlinePayload]
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.fail(provider.ResourceAirlines, err)
		return
	}

	saved := 0
	for _, p := range envelope.Data {
		airline := &domain.Airline{Name: p.Name, Iata: p.Iata, Country: p.Country}
		if err := s.catalog.CreateAirline(ctx, airline); err != nil {
			s.failPartial(ctx, provider.ResourceAirlines, saved, err)
			return
		}
		saved++
	}
	s.done(ctx, provider.ResourceAirlines, saved)
}

func (s *SyncService) SyncAirports(ctx context.Context) {
	body, err := s.provider.Load(ctx, provider.ResourceAirports, nil)
	if err != nil {
		s.fail(provider.ResourceAirports, err)
		return
	}

	var envelope provider.Envelope[provider.AirportPayload]
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.fail(provider.ResourceAirports, err)
		return
	}

	saved := 0
	for _, p := range envelope.Data {
		airport := &domain.Airport{Name: p.Name, TimeZone: p.Timezone, Icao: p.Icao, Country: p.Country}
		if err := s.catalog.CreateAirport(ctx, airport); err != nil {
			s.failPartial(ctx, provider.ResourceAirports, saved, err)
			return
		}
		saved++
	}
	s.done(ctx, provider.ResourceAirports, saved)
}

func (s *SyncService) SyncFlights(ctx context.Context) {
	body, err := s.provider.Load(ctx, provider.ResourceFlights, nil)
	if err != nil {
		s.fail(provider.ResourceFlights, err)
		return
	}

	var envelope provider.Envelope[provider.FlightPayload]
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.fail(provider.ResourceFlights, err)
		return
	}

	saved := 0
	for _, p := range envelope.Data {
		if err := s.catalog.CreateFlight(ctx, mapFlight(p)); err != nil {
			s.failPartial(ctx, provider.ResourceFlights, saved, err)
			return
		}
		saved++
	}
	s.done(ctx, provider.ResourceFlights, saved)
}

func mapFlight(p provider.FlightPayload) *domain.ScheduledFlight {
	return &domain.ScheduledFlight{
		FlightDate:   p.FlightDate.Time,
		FlightStatus: domain.ParseFlightStatus(p.FlightStatus),
		Departure: domain.Departure{
			Airport:   p.Departure.Airport,
			Timezone:  p.Departure.Timezone,
			Iata:      p.Departure.Iata,
			Terminal:  p.Departure.Terminal,
			Gate:      p.Departure.Gate,
			Scheduled: p.Departure.Scheduled,
		},
		Arrival: domain.Arrival{
			Airport:   p.Arrival.Airport,
			Timezone:  p.Arrival.Timezone,
			Iata:      p.Arrival.Iata,
			Terminal:  p.Arrival.Terminal,
			Gate:      p.Arrival.Gate,
			Scheduled: p.Arrival.Scheduled,
		},
		Airline: domain.FlightAirline{Name: p.Airline.Name, Iata: p.Airline.Iata},
		Flight:  domain.FlightCode{Number: p.Flight.Number, Iata: p.Flight.Iata, Icao: p.Flight.Icao},
	}
}

func (s *SyncService) done(ctx context.Context, resource string, saved int) {
	if s.cache != nil {
		_ = s.cache.InvalidateCatalog(ctx)
	}
	if s.metrics != nil {
		s.metrics.SyncedRecords.WithLabelValues(resource).Add(float64(saved))
	}
	s.log.Info("catalog data saved", "resource", resource, "records", saved)
}

func (s *SyncService) fail(resource string, err error) {
	if s.metrics != nil {
		s.metrics.SyncFailures.WithLabelValues(resource).Inc()
	}
	s.log.Error("catalog sync failed", "resource", resource, "error", err)
}

// failPartial handles a store error mid-pass. Records appended before the
// failure are already committed, so the stale list caches must be invalidated
// and the partial count recorded.
func (s *SyncService) failPartial(ctx context.Context, resource string, saved int, err error) {
	if saved > 0 {
		if s.cache != nil {
			_ = s.cache.InvalidateCatalog(ctx)
		}
		if s.metrics != nil {
			s.metrics.SyncedRecords.WithLabelValues(resource).Add(float64(saved))
		}
	}
	if s.metrics != nil {
		s.metrics.SyncFailures.WithLabelValues(resource).Inc()
	}
	s.log.Error("catalog sync failed mid-pass", "resource", resource, "records", saved, "error", err)
}

var _ CatalogSyncer = (*SyncService)(nil)
