package flight

import (
	"context"
	"strconv"
	"time"
	"travel/pkg/idgen"
	"travel/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type FlightClient interface {
	Search(ctx context.Context, q FlightQuery) SearchResult
}

type Service struct {
	flightClient FlightClient
	idgen        idgen.Generator
	logger       logger.Client
	results      metric.Int64Counter
}

func NewService(flightClient FlightClient, gen idgen.Generator, logger logger.Client) *Service {
	results, err := otel.Meter("travel/internal/flight").Int64Counter(
		"flight_search_results_total",
		metric.WithDescription("Completed flight searches by outcome"),
	)
	if err != nil {
		results, _ = noop.NewMeterProvider().Meter("").Int64Counter("flight_search_results_total")
	}

	return &Service{
		flightClient: flightClient,
		idgen:        gen,
		logger:       logger,
		results:      results,
	}
}

// Search runs one lookup and stamps the result with a fresh search id.
func (s *Service) Search(ctx context.Context, q FlightQuery) SearchResult {
	searchID := strconv.FormatInt(s.idgen.GenerateID(), 10)
	s.logger.Info("flight search started",
		logger.Field{Key: "search_id", Value: searchID},
		logger.Field{Key: "departure_id", Value: q.DepartureID},
		logger.Field{Key: "arrival_id", Value: q.ArrivalID},
		logger.Field{Key: "outbound_date", Value: q.OutboundDate.Format(DateLayout)},
		logger.Field{Key: "return_date", Value: q.ReturnDate.Format(DateLayout)},
	)

	startTime := time.Now()
	result := s.flightClient.Search(ctx, q)
	result.SearchID = searchID
	elapsed := time.Since(startTime)

	s.results.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", result.Status),
		attribute.String("kind", string(result.Kind)),
	))

	if result.OK() {
		s.logger.Info("flight found",
			logger.Field{Key: "search_id", Value: searchID},
			logger.Field{Key: "flight_id", Value: result.Data.FlightID},
			logger.Field{Key: "price", Value: result.Data.Price},
			logger.Field{Key: "elapsed", Value: elapsed},
		)
		return result
	}

	s.logger.Error("flight search failed",
		logger.Field{Key: "search_id", Value: searchID},
		logger.Field{Key: "kind", Value: string(result.Kind)},
		logger.Field{Key: "message", Value: result.Message},
		logger.Field{Key: "elapsed", Value: elapsed},
	)
	return result
}
