// Package session simulates per-user web sessions as a five-stage funnel
// state machine: home, category, product, cart, purchase. Early-funnel
// proceed probabilities are the same for every acquisition channel; only the
// cart-to-purchase step varies by traffic source. That split is deliberate
// calibration: browsing behavior is modeled as homogeneous, and channel
// quality is allowed to show only where purchase intent actually differs.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storesim/internal/dist"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

const (
	sessionsPerUserMean = 1.6

	// A session bounces after home with this probability, before any
	// stage-transition roll, regardless of traffic source.
	bounceProb = 0.35

	homeToCategoryProb    = 0.52
	categoryToProductProb = 0.59
	productToCartProb     = 0.17

	activeWindow = 365 * 24 * time.Hour
	// Users created close to the dataset end still get this much room.
	minimumWindow = 14 * 24 * time.Hour
)

// cartToPurchaseProb is where traffic-source intent shows up.
var cartToPurchaseProb = map[enums.TrafficSource]float64{
	enums.TrafficSourceEmail:    0.68,
	enums.TrafficSourceOrganic:  0.60,
	enums.TrafficSourceSearch:   0.53,
	enums.TrafficSourceFacebook: 0.38,
	enums.TrafficSourceDisplay:  0.28,
}

var deviceWeights = dist.MustWeighted([]dist.Choice[enums.DeviceType]{
	{Value: enums.DeviceTypeMobile, Weight: 0.52},
	{Value: enums.DeviceTypeDesktop, Weight: 0.38},
	{Value: enums.DeviceTypeTablet, Weight: 0.10},
})

var browserWeights = dist.MustWeighted([]dist.Choice[enums.Browser]{
	{Value: enums.BrowserChrome, Weight: 0.50},
	{Value: enums.BrowserSafari, Weight: 0.25},
	{Value: enums.BrowserFirefox, Weight: 0.12},
	{Value: enums.BrowserIE, Weight: 0.08},
	{Value: enums.BrowserOther, Weight: 0.05},
})

// Per-transition dwell time ranges, in whole seconds.
var stageDelays = map[enums.EventType][2]int{
	enums.EventTypeCategory: {10, 90},
	enums.EventTypeProduct:  {15, 120},
	enums.EventTypeCart:     {10, 60},
	enums.EventTypePurchase: {30, 300},
}

// Simulator walks the funnel for every user's sessions.
type Simulator struct {
	src        *dist.Source
	products   []model.Product
	datasetEnd time.Time
}

// NewSimulator builds a simulator over a non-empty catalog.
func NewSimulator(src *dist.Source, products []model.Product, datasetEnd time.Time) (*Simulator, error) {
	if src == nil {
		return nil, errors.New("random source required")
	}
	if len(products) == 0 {
		return nil, errors.New("product catalog required")
	}
	return &Simulator{src: src, products: products, datasetEnd: datasetEnd}, nil
}

// Simulate generates sessions and their events for every user, in user order.
// Session and event ids are sequential starting at 1.
func (s *Simulator) Simulate(ctx context.Context, users []model.User) ([]model.Session, []model.Event, error) {
	if len(users) == 0 {
		return nil, nil, errors.New("no users to simulate")
	}

	var sessions []model.Session
	var events []model.Event
	sessionID := int64(1)
	eventID := int64(1)

	for _, user := range users {
		count := s.src.Poisson(sessionsPerUserMean)
		if count < 1 {
			count = 1
		}

		windowEnd := user.CreatedAt.Add(activeWindow)
		if windowEnd.After(s.datasetEnd) {
			windowEnd = s.datasetEnd
		}
		if windowEnd.Sub(user.CreatedAt) < minimumWindow {
			windowEnd = user.CreatedAt.Add(minimumWindow)
		}

		for i := 0; i < count; i++ {
			session, sessionEvents := s.runSession(sessionID, eventID, user, windowEnd)
			sessions = append(sessions, session)
			events = append(events, sessionEvents...)
			sessionID++
			eventID += int64(len(sessionEvents))
		}
	}
	return sessions, events, nil
}

// runSession walks one session through the funnel until a transition roll
// fails or the purchase terminal is reached.
func (s *Simulator) runSession(sessionID, firstEventID int64, user model.User, windowEnd time.Time) (model.Session, []model.Event) {
	start := s.src.TimeBetween(user.CreatedAt, windowEnd)
	device := deviceWeights.Sample(s.src)
	browser := browserWeights.Sample(s.src)

	session := model.Session{
		ID:        sessionID,
		UserID:    user.ID,
		StartedAt: start,
		Device:    device,
		Browser:   browser,
		Reached:   enums.EventTypeHome,
	}

	eventID := firstEventID
	at := start
	var boundProduct *int64

	emit := func(stage enums.EventType, uri string) model.Event {
		ev := model.Event{
			ID:            eventID,
			SessionID:     sessionID,
			UserID:        user.ID,
			Type:          stage,
			CreatedAt:     at,
			Device:        device,
			Browser:       browser,
			TrafficSource: user.TrafficSource,
			URI:           uri,
			ProductID:     boundProduct,
		}
		eventID++
		session.Reached = stage
		return ev
	}

	events := []model.Event{emit(enums.EventTypeHome, "/home")}

	if s.src.Roll(bounceProb) {
		return session, events
	}

	if !s.src.Roll(homeToCategoryProb) {
		return session, events
	}
	at = s.advance(at, enums.EventTypeCategory)
	events = append(events, emit(enums.EventTypeCategory, "/category"))

	if !s.src.Roll(categoryToProductProb) {
		return session, events
	}
	at = s.advance(at, enums.EventTypeProduct)
	// Bind one product to the session; cart and purchase reuse it.
	product := dist.PickOne(s.src, s.products)
	boundProduct = &product.ID
	events = append(events, emit(enums.EventTypeProduct, productURI(product.ID)))

	if !s.src.Roll(productToCartProb) {
		return session, events
	}
	at = s.advance(at, enums.EventTypeCart)
	events = append(events, emit(enums.EventTypeCart, "/cart"))

	if !s.src.Roll(cartToPurchaseProb[user.TrafficSource]) {
		return session, events
	}
	at = s.advance(at, enums.EventTypePurchase)
	events = append(events, emit(enums.EventTypePurchase, "/purchase"))

	return session, events
}

func (s *Simulator) advance(at time.Time, stage enums.EventType) time.Time {
	delay := stageDelays[stage]
	return at.Add(time.Duration(s.src.IntBetween(delay[0], delay[1])) * time.Second)
}

func productURI(id int64) string {
	return "/product/" + model.FormatID(id)
}
