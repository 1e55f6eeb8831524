// Package domain holds DTOs for pricing http and service contracts
package domain

import (
	"context"

	"farescout/internal/core/offer"
)

// PriceInput re-prices previously indexed offers by their cache refs
type PriceInput struct {
	OfferRefs  []string `json:"offerRefs" validate:"required,min=1,max=5,dive,min=1"`
	Include    []string `json:"include,omitempty"`
	ForceClass bool     `json:"forceClass,omitempty"`
}

// PriceResult is the confirmed pricing envelope
type PriceResult struct {
	Offers []offer.Offer `json:"offers"`
	Count  int           `json:"count"`
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	PriceByRefs(ctx context.Context, in PriceInput) (PriceResult, error)
}
