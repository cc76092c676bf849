package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mdconv/format"
	"mdconv/host"
	"mdconv/markup"
)

// ErrEmptySelection is returned when there is nothing to convert. Document
// is left untouched.
var ErrEmptySelection = errors.New("selection is empty")

// Status messages reported to the user.
const (
	StatusEmptySelection = "Select markdown text and try again."
	StatusCompleted      = "Markdown conversion completed."
	StatusFailedPrefix   = "Conversion failed: "
)

// StatusFunc receives single plain message describing conversion outcome.
type StatusFunc func(msg string)

// Converter replaces selected markup text of a host document with styled
// blocks.
type Converter struct {
	Styles format.Styles
	Status StatusFunc
	Log    *zap.Logger

	// Parsed, when set, gets parsed elements before they are applied.
	Parsed func([]markup.Element)
}

func (c *Converter) status(msg string) {
	if c.Status != nil {
		c.Status(msg)
	}
}

// Convert runs the whole conversion: reads selection, deletes it and applies
// parsed elements in its place. There are three synchronization points:
// reading the selection, deleting it and the final commit. Failures are
// reported through Status once and returned. Nothing is rolled back, blocks
// applied before a failing one stay in the document.
func (c *Converter) Convert(ctx context.Context, doc host.Document) (err error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	defer func(start time.Time) {
		switch {
		case err == nil:
			log.Debug("Markdown converted", zap.Duration("elapsed", time.Since(start)))
			c.status(StatusCompleted)
		case errors.Is(err, ErrEmptySelection):
			c.status(StatusEmptySelection)
		default:
			c.status(StatusFailedPrefix + err.Error())
		}
	}(time.Now())

	text, err := doc.SelectionText(ctx)
	if err != nil {
		return fmt.Errorf("unable to read selection: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		log.Debug("Nothing selected")
		return ErrEmptySelection
	}

	elements := markup.Parse(text)
	log.Debug("Selection parsed", zap.Int("lines", len(elements)))
	if c.Parsed != nil {
		c.Parsed(elements)
	}

	if err := doc.DeleteSelection(host.SelectDeletedRange); err != nil {
		return fmt.Errorf("unable to delete selection: %w", err)
	}
	if err := doc.Sync(ctx); err != nil {
		return fmt.Errorf("unable to delete selection: %w", err)
	}

	cur := format.NewCursor(doc.Selection())
	if err := format.NewApplier(c.Styles, log).Apply(elements, cur, doc); err != nil {
		// commit whatever was queued before the failure
		if er := doc.Sync(ctx); er != nil {
			err = multierr.Append(err, er)
		}
		return fmt.Errorf("unable to apply formatting: %w", err)
	}

	if err := doc.Sync(ctx); err != nil {
		return fmt.Errorf("unable to commit formatting: %w", err)
	}
	return nil
}
