package overlay

import (
	log "github.com/sirupsen/logrus"

	"overlaymap/internal/metrics"
)

// Control is the checkbox for one layer. While checked, the layer is in the
// registry and its pointer handler is subscribed; every path out of the
// checked state (uncheck or Close) undoes both.
type Control struct {
	Layer *Layer

	registry   *Registry
	dispatcher *Dispatcher
	tolerance  float64

	checked bool
	unsubs  []func()
	popover Popover
}

func NewControl(l *Layer, r *Registry, d *Dispatcher, tolerancePx float64) *Control {
	if tolerancePx <= 0 {
		tolerancePx = DefaultHitTolerance
	}
	return &Control{Layer: l, registry: r, dispatcher: d, tolerance: tolerancePx}
}

func (c *Control) Checked() bool { return c.checked }

// Popover is the layer's current popover.
func (c *Control) Popover() Popover { return c.popover }

// SetChecked moves the control to on. Setting the current state again is a
// no-op. The result is true when the caller should start loading the
// layer's lazy store.
func (c *Control) SetChecked(on bool) (load bool) {
	if on {
		if !c.checked {
			c.checked = true
			c.registry.Add(c.Layer)
			c.subscribe()
			metrics.LayerToggles.WithLabelValues(c.Layer.ID, "on").Inc()
			log.WithField("layer", c.Layer.ID).Debug("layer enabled")
		}
		return c.Layer.Lazy && !c.Layer.Store.Started()
	}
	if c.checked {
		c.checked = false
		c.release()
		metrics.LayerToggles.WithLabelValues(c.Layer.ID, "off").Inc()
		log.WithField("layer", c.Layer.ID).Debug("layer disabled")
	}
	return false
}

// Toggle flips the checkbox.
func (c *Control) Toggle() (load bool) { return c.SetChecked(!c.checked) }

// Close tears the control down whatever its state; safe to call repeatedly.
func (c *Control) Close() {
	c.checked = false
	c.release()
}

// SetPopover is used by side panels to show a row's feature.
func (c *Control) SetPopover(p Popover) { c.popover = p }

func (c *Control) subscribe() {
	kind := PointerClick
	if c.Layer.Interaction == InteractHover {
		kind = PointerMove
	}
	c.unsubs = append(c.unsubs, c.dispatcher.On(kind, c.handle))
}

func (c *Control) release() {
	c.registry.Remove(c.Layer)
	for _, u := range c.unsubs {
		u()
	}
	c.unsubs = nil
	c.Layer.Selection.Clear()
	c.popover = Popover{}
}

func (c *Control) handle(ev PointerEvent) {
	hits := c.Layer.HitTest(ev, c.tolerance)
	if c.Layer.Selection.Pick(hits) {
		metrics.SelectionChanges.WithLabelValues(c.Layer.ID).Inc()
	}
	if len(hits) == 1 {
		var lines []string
		if c.Layer.Popover != nil {
			lines = c.Layer.Popover(hits[0])
		}
		c.popover = Popover{Anchor: ev.Coordinate, Lines: lines, Visible: true, Seq: ev.Seq}
		return
	}
	if c.popover.Visible {
		c.popover = Popover{Seq: ev.Seq}
	}
}
