// Package navigator tracks which page section is in view and scrolls to
// sections on request, offsetting for the fixed navigation bar.
package navigator

import (
	"context"
	"slices"
	"sync"

	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

const (
	DefaultThreshold = 0.3
	DefaultNavOffset = 80
)

var DefaultSections = []string{"hero", "about", "skills", "experience", "projects", "contact"}

// VisibilityEvent is one section's intersection with the (inset) viewport.
type VisibilityEvent struct {
	SectionID         string  `json:"id"`
	IntersectionRatio float64 `json:"ratio"`
	IsIntersecting    bool    `json:"isIntersecting"`
}

type ObserveOptions struct {
	Threshold float64 `json:"threshold"`
	// * Root margin insets, positive values shrink the viewport
	MarginTop    float64 `json:"marginTop"`
	MarginBottom float64 `json:"marginBottom"`
}

// Observer streams batches of visibility events for the given sections. The
// channel is closed when observation ends.
type Observer interface {
	Observe(ctx context.Context, sectionIDs []string, opts ObserveOptions) (<-chan []VisibilityEvent, error)
}

type ScrollBehavior string

const (
	ScrollSmooth  ScrollBehavior = "smooth"
	ScrollInstant ScrollBehavior = "instant"
)

// Viewport exposes page geometry and scrolling.
type Viewport interface {
	// * ElementTop is the element's top relative to the viewport, false if absent
	ElementTop(sectionID string) (float64, bool)
	PageYOffset() float64
	ScrollTo(top float64, behavior ScrollBehavior)
}

type Option func(*Navigator)

func WithThreshold(t float64) Option {
	return func(n *Navigator) { n.threshold = t }
}

func WithNavOffset(px float64) Option {
	return func(n *Navigator) { n.navOffset = px }
}

type Navigator struct {
	sections   []string
	registered map[string]struct{}
	threshold  float64
	navOffset  float64
	viewport   Viewport

	mu          sync.RWMutex
	active      string
	subscribers map[chan string]struct{}
}

func New(sections []string, viewport Viewport, opts ...Option) *Navigator {
	n := &Navigator{
		sections:    slices.Clone(sections),
		registered:  make(map[string]struct{}, len(sections)),
		threshold:   DefaultThreshold,
		navOffset:   DefaultNavOffset,
		viewport:    viewport,
		subscribers: make(map[chan string]struct{}),
	}
	for _, id := range sections {
		n.registered[id] = struct{}{}
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Navigator) Sections() []string {
	return slices.Clone(n.sections)
}

func (n *Navigator) IsRegistered(id string) bool {
	_, ok := n.registered[id]
	return ok
}

// ActiveSection returns the section in view, false before any was observed.
func (n *Navigator) ActiveSection() (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.active, n.active != ""
}

func (n *Navigator) ObserveOptions() ObserveOptions {
	return ObserveOptions{
		Threshold:    n.threshold,
		MarginTop:    n.navOffset,
		MarginBottom: n.navOffset,
	}
}

// HandleBatch applies events in delivery order; the last qualifying event of
// the batch decides the active section.
func (n *Navigator) HandleBatch(events []VisibilityEvent) {
	next := ""
	for _, ev := range events {
		if !ev.IsIntersecting || ev.IntersectionRatio < n.threshold {
			continue
		}
		if !n.IsRegistered(ev.SectionID) {
			logger.Debug("ignoring visibility of unregistered section %q", ev.SectionID)
			continue
		}
		next = ev.SectionID
	}
	if next == "" {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if next == n.active {
		return
	}
	n.active = next
	for ch := range n.subscribers {
		// * Drop the stale pending value so the newest one always fits
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}

// Subscribe delivers every change of the active section. Slow readers only
// see the most recent value.
func (n *Navigator) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 1)

	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subscribers, ch)
			n.mu.Unlock()
		})
	}
}

// Run feeds the observer's batches into HandleBatch until ctx is done or the
// stream ends.
func (n *Navigator) Run(ctx context.Context, obs Observer) error {
	batches, err := obs.Observe(ctx, n.Sections(), n.ObserveOptions())
	if err != nil {
		return err
	}

	for {
		select {
		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			n.HandleBatch(batch)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ScrollToSection smooth-scrolls so the section starts just below the
// navigation bar. Unknown sections are ignored. The active section is left
// for the observer to update once the viewport has moved.
func (n *Navigator) ScrollToSection(id string) bool {
	if !n.IsRegistered(id) || n.viewport == nil {
		return false
	}

	top, ok := n.viewport.ElementTop(id)
	if !ok {
		logger.Debug("section %q is registered but not on the page", id)
		return false
	}

	target := top + n.viewport.PageYOffset() - n.navOffset
	n.viewport.ScrollTo(target, ScrollSmooth)
	return true
}
