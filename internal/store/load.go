package store

import (
	"context"
	"sync"
	"time"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// Load performs the initial batch load: one concurrent read per collection,
// all-settle. A failed read is logged and its collection published empty;
// the loading flag clears only once every read has been accounted for.
func (s *Store) Load(ctx context.Context) {
	start := time.Now()
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		wg         sync.WaitGroup
		destRows   []gateway.Row
		saleRows   []gateway.Row
		userRows   []gateway.Row
		clientRows []gateway.Row
		identRows  []gateway.Row
		excRows    []gateway.Row
		imageRows  []gateway.Row
	)

	read := func(dst *[]gateway.Row, table gateway.Table, orderBy string) {
		defer wg.Done()
		rows, err := s.gw.Select(ctx, table, nil, orderBy)
		if err != nil {
			s.log.Error("initial load failed for collection", "table", table, "error", err)
			return
		}
		*dst = rows
	}

	wg.Add(6)
	go read(&destRows, gateway.TableDestinations, "created_at desc")
	go read(&saleRows, gateway.TableSales, "created_at desc")
	go read(&userRows, gateway.TableProfiles, "created_at desc")
	go read(&excRows, gateway.TableExcursions, "id asc")
	go read(&imageRows, gateway.TableDestinationImages, "display_order asc")
	go func() {
		// clients read includes the identity join
		defer wg.Done()
		rows, err := s.gw.Select(ctx, gateway.TableClients, nil, "created_at desc")
		if err != nil {
			s.log.Error("initial load failed for collection", "table", gateway.TableClients, "error", err)
			return
		}
		clientRows = rows
		ids, err := s.gw.Select(ctx, gateway.TableClientIdentities, nil, "")
		if err != nil {
			s.log.Error("identity join failed, clients published without identities", "error", err)
			return
		}
		identRows = ids
	}()
	wg.Wait()

	// group gallery images by destination
	imagesByDest := make(map[uint][]models.DestinationImage)
	for _, r := range imageRows {
		img := normalizeImage(r)
		imagesByDest[img.DestinationID] = append(imagesByDest[img.DestinationID], img)
	}

	identByClient := make(map[uint]*models.ClientIdentity)
	for _, r := range identRows {
		identByClient[gateway.Uint(r, "client_id")] = normalizeIdentity(r)
	}

	destinations := make([]models.Destination, 0, len(destRows))
	for _, r := range destRows {
		d := normalizeDestination(r, imagesByDest[gateway.Uint(r, "id")])
		destinations = append(destinations, d)
	}
	sales := make([]models.Sale, 0, len(saleRows))
	for _, r := range saleRows {
		sales = append(sales, normalizeSale(r))
	}
	profiles := make([]models.Profile, 0, len(userRows))
	for _, r := range userRows {
		profiles = append(profiles, normalizeProfile(r))
	}
	clients := make([]models.Client, 0, len(clientRows))
	for _, r := range clientRows {
		clients = append(clients, normalizeClient(r, identByClient[gateway.Uint(r, "id")]))
	}
	excursions := make([]models.Excursion, 0, len(excRows))
	for _, r := range excRows {
		excursions = append(excursions, normalizeExcursion(r))
	}

	s.mu.Lock()
	s.destinations = destinations
	s.sales = sales
	s.profiles = profiles
	s.clients = clients
	s.excursions = excursions
	s.loading = false
	s.mu.Unlock()

	s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	s.log.Info("collections loaded",
		"destinations", len(destinations),
		"sales", len(sales),
		"clients", len(clients),
		"excursions", len(excursions),
		"users", len(profiles),
	)
}
