package store

import "github.com/solviatours/backoffice/internal/models"

// Stats derives the dashboard snapshot from the in-memory collections.
// Unique clients are counted by distinct client-name snapshot across
// sales, not by client id: walk-in sales without a linked client record
// still count, and the number matches what the sales list shows.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var revenue float64
	names := make(map[string]struct{})
	for _, sale := range s.sales {
		revenue += sale.TotalAmount
		if sale.ClientName != "" {
			names[sale.ClientName] = struct{}{}
		}
	}
	active := 0
	for _, d := range s.destinations {
		if d.Active {
			active++
		}
	}
	return models.Stats{
		TotalRevenue:       revenue,
		ActiveDestinations: active,
		TotalSales:         len(s.sales),
		UniqueClients:      len(names),
	}
}
