package store

import (
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// Start opens one change-feed subscription per mutable collection. Events
// arrive asynchronously and independently, interleaved with local CRUD
// calls; the dedupe-by-id rule on INSERT is the sole ordering safeguard.
func (s *Store) Start() {
	for _, table := range []gateway.Table{
		gateway.TableSales,
		gateway.TableDestinations,
		gateway.TableClients,
		gateway.TableExcursions,
		gateway.TableProfiles,
	} {
		sub := s.feed.Subscribe(table)
		s.subs = append(s.subs, sub)
		s.wg.Add(1)
		go s.consume(sub)
	}
}

// Close releases every open subscription and waits for the consumers to
// drain, so no listener outlives the store.
func (s *Store) Close() {
	for _, sub := range s.subs {
		sub.Close()
	}
	s.wg.Wait()
	s.subs = nil
}

func (s *Store) consume(sub *gateway.Subscription) {
	defer s.wg.Done()
	for e := range sub.Events() {
		s.apply(e)
	}
}

// apply routes one change event to its collection handler.
func (s *Store) apply(e gateway.ChangeEvent) {
	s.metrics.FeedEvents.WithLabelValues(string(e.Table), string(e.Kind)).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Table {
	case gateway.TableSales:
		s.sales = applySaleEvent(s.sales, e)
	case gateway.TableDestinations:
		s.destinations, s.excursions = applyDestinationEvent(s.destinations, s.excursions, e)
	case gateway.TableClients:
		s.clients = applyClientEvent(s.clients, e)
	case gateway.TableExcursions:
		s.excursions = applyExcursionEvent(s.excursions, e)
	case gateway.TableProfiles:
		s.profiles = applyProfileEvent(s.profiles, e)
	}
}

// The handlers below are pure: old collection + event → new collection.

// insertFront prepends rec unless a record with the same id is already
// present. This guards against double-application when a local optimistic
// insert races the feed echo of its own write.
func insertFront[T any](list []T, rec T, id uint, idOf func(T) uint) []T {
	for _, existing := range list {
		if idOf(existing) == id {
			return list
		}
	}
	return append([]T{rec}, list...)
}

// replaceByID swaps the matching record in place; absent ids leave the
// collection untouched.
func replaceByID[T any](list []T, rec T, id uint, idOf func(T) uint) []T {
	out := append([]T{}, list...)
	for i, existing := range out {
		if idOf(existing) == id {
			out[i] = rec
			break
		}
	}
	return out
}

// removeByID filters out the matching record.
func removeByID[T any](list []T, id uint, idOf func(T) uint) []T {
	out := make([]T, 0, len(list))
	for _, existing := range list {
		if idOf(existing) != id {
			out = append(out, existing)
		}
	}
	return out
}

func saleID(s models.Sale) uint               { return s.ID }
func destinationID(d models.Destination) uint { return d.ID }
func clientID(c models.Client) uint           { return c.ID }
func excursionID(e models.Excursion) uint     { return e.ID }
func profileID(p models.Profile) uint         { return p.ID }

func applySaleEvent(sales []models.Sale, e gateway.ChangeEvent) []models.Sale {
	id := gateway.Uint(e.Row, "id")
	switch e.Kind {
	case gateway.EventInsert:
		return insertFront(sales, normalizeSale(e.Row), id, saleID)
	case gateway.EventUpdate:
		return replaceByID(sales, normalizeSale(e.Row), id, saleID)
	case gateway.EventDelete:
		return removeByID(sales, id, saleID)
	}
	return sales
}

// applyDestinationEvent also maintains the excursion collection: deleting
// a destination purges local excursions still pointing at it, so stale
// foreign references never linger in memory. The feed payload carries no
// image list, so updates preserve the local one.
func applyDestinationEvent(dests []models.Destination, excs []models.Excursion, e gateway.ChangeEvent) ([]models.Destination, []models.Excursion) {
	id := gateway.Uint(e.Row, "id")
	switch e.Kind {
	case gateway.EventInsert:
		return insertFront(dests, normalizeDestination(e.Row, nil), id, destinationID), excs
	case gateway.EventUpdate:
		var existingImages []models.DestinationImage
		for _, d := range dests {
			if d.ID == id {
				existingImages = d.Images
				break
			}
		}
		return replaceByID(dests, normalizeDestination(e.Row, existingImages), id, destinationID), excs
	case gateway.EventDelete:
		kept := make([]models.Excursion, 0, len(excs))
		for _, ex := range excs {
			if ex.DestinationID != nil && *ex.DestinationID == id {
				continue
			}
			kept = append(kept, ex)
		}
		return removeByID(dests, id, destinationID), kept
	}
	return dests, excs
}

// applyClientEvent preserves the merged identity extension across updates;
// it is stored separately and never part of the feed payload.
func applyClientEvent(clients []models.Client, e gateway.ChangeEvent) []models.Client {
	id := gateway.Uint(e.Row, "id")
	switch e.Kind {
	case gateway.EventInsert:
		return insertFront(clients, normalizeClient(e.Row, nil), id, clientID)
	case gateway.EventUpdate:
		var identity *models.ClientIdentity
		for _, c := range clients {
			if c.ID == id {
				identity = c.Identity
				break
			}
		}
		return replaceByID(clients, normalizeClient(e.Row, identity), id, clientID)
	case gateway.EventDelete:
		return removeByID(clients, id, clientID)
	}
	return clients
}

func applyExcursionEvent(excs []models.Excursion, e gateway.ChangeEvent) []models.Excursion {
	id := gateway.Uint(e.Row, "id")
	switch e.Kind {
	case gateway.EventInsert:
		return insertFront(excs, normalizeExcursion(e.Row), id, excursionID)
	case gateway.EventUpdate:
		return replaceByID(excs, normalizeExcursion(e.Row), id, excursionID)
	case gateway.EventDelete:
		return removeByID(excs, id, excursionID)
	}
	return excs
}

func applyProfileEvent(profiles []models.Profile, e gateway.ChangeEvent) []models.Profile {
	id := gateway.Uint(e.Row, "id")
	switch e.Kind {
	case gateway.EventInsert:
		return insertFront(profiles, normalizeProfile(e.Row), id, profileID)
	case gateway.EventUpdate:
		return replaceByID(profiles, normalizeProfile(e.Row), id, profileID)
	case gateway.EventDelete:
		return removeByID(profiles, id, profileID)
	}
	return profiles
}
