package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyBarberName  = errors.New("barber name cannot be empty")
	ErrEmptyServiceName = errors.New("service name cannot be empty")
	ErrInvalidDuration  = errors.New("service duration must be positive")
	ErrNegativePrice    = errors.New("service price cannot be negative")
)

// Barber is read-only reference data owned by the catalog; the booking engine
// never mutates it.
type Barber struct {
	id           uuid.UUID
	name         string
	location     string
	workingHours WorkingHours
}

func NewBarber(id uuid.UUID, name, location string, hours WorkingHours) (*Barber, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyBarberName
	}
	return &Barber{
		id:           id,
		name:         name,
		location:     location,
		workingHours: hours,
	}, nil
}

func (b *Barber) ID() uuid.UUID              { return b.id }
func (b *Barber) Name() string               { return b.name }
func (b *Barber) Location() string           { return b.location }
func (b *Barber) WorkingHours() WorkingHours { return b.workingHours }

// Service is an offering of one barber. Prices are euro cents; durations are
// minutes.
type Service struct {
	id          uuid.UUID
	barberID    uuid.UUID
	name        string
	description string
	durationMin int
	priceCents  int64
}

func NewService(id, barberID uuid.UUID, name, description string, durationMin int, priceCents int64) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyServiceName
	}
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Service{
		id:          id,
		barberID:    barberID,
		name:        name,
		description: description,
		durationMin: durationMin,
		priceCents:  priceCents,
	}, nil
}

func (s *Service) ID() uuid.UUID       { return s.id }
func (s *Service) BarberID() uuid.UUID { return s.barberID }
func (s *Service) Name() string        { return s.name }
func (s *Service) Description() string { return s.description }
func (s *Service) DurationMin() int    { return s.durationMin }
func (s *Service) PriceCents() int64   { return s.priceCents }

func (s *Service) Duration() time.Duration {
	return time.Duration(s.durationMin) * time.Minute
}
