// Package cachekey derives stable cache keys from canonicalized parameter
// objects. Keys are namespace-prefixed SHA-1 hex digests.
package cachekey

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Namespace prefixes for the persisted key layout
const (
	PrefixSearch      = "search"
	PrefixSearchAdv   = "search-adv"
	PrefixOffer       = "offer"
	PrefixDates       = "dates"
	PrefixInspiration = "inspiration"
	PrefixPriceIPA    = "ipa"
	PrefixAirline     = "airline"
	PrefixAirport     = "airport"
	PrefixBaseline    = "baseline"
)

// Hash serializes v to canonical JSON and returns its SHA-1 hex digest.
// encoding/json emits struct fields in declaration order and map keys
// sorted, so equal values always produce equal digests.
func Hash(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:]), nil
}

// For builds "<prefix>:<sha1(v)>"
func For(prefix string, v any) (string, error) {
	h, err := Hash(v)
	if err != nil {
		return "", err
	}
	return prefix + ":" + h, nil
}

// OfferRef builds the per-offer index key "offer:<provider>:<coreID>"
func OfferRef(provider, coreID string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixOffer, provider, coreID)
}
