package classify

import (
	"context"
	"log/slog"
	"strings"

	"steamqueue/internal/steam"
)

// denuvoSuffix is the literal marker appended to the display string when
// DRM is detected. The games log format depends on this exact text.
const denuvoSuffix = " [DENUVO]"

// platformRules maps config/remote platform flags to display abbreviations
// and queue codes, in fixed output order.
var platformRules = []struct {
	abbrev string
	code   string
}{
	{"Win", "win64"},
	{"Mac", "macos"},
	{"Lin", "lin64"},
}

// Classification is the derived summary for one identifier.
type Classification struct {
	ID             string
	Name           string
	Display        string
	QueuePlatforms []string
	HasDenuvo      bool
}

// Options holds the configuration slice the classifier needs.
type Options struct {
	Windows       bool
	Mac           bool
	Linux         bool
	FilterDenuvo  bool
	DenuvoStrings []string
}

// DetailFetcher fetches one detail record. (nil, nil) means the remote had
// no usable record for the identifier.
type DetailFetcher interface {
	Details(ctx context.Context, id string) (*steam.AppDetails, error)
}

// Classifier turns identifiers into classifications.
type Classifier struct {
	fetcher DetailFetcher
	opts    Options
	logger  *slog.Logger
}

// New creates a classifier. A nil logger disables per-item logging.
func New(fetcher DetailFetcher, opts Options, logger *slog.Logger) *Classifier {
	return &Classifier{fetcher: fetcher, opts: opts, logger: logger}
}

// Unknown is the classification for identifiers whose details could not be
// retrieved: no queue platforms, the identifier stands in for the name.
func Unknown(id string) Classification {
	return Classification{ID: id, Name: id, Display: "Unknown"}
}

// Classify fetches and classifies one identifier. It never returns an
// error; every failure path yields Unknown.
func (c *Classifier) Classify(ctx context.Context, id string) Classification {
	details, err := c.fetcher.Details(ctx, id)
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("detail fetch failed", "app_id", id, "error", err)
		}
		return Unknown(id)
	}
	if details == nil {
		if c.logger != nil {
			c.logger.Debug("no detail record", "app_id", id)
		}
		return Unknown(id)
	}

	hasDenuvo := c.matchDenuvo(details.DRMNotice)
	if c.logger != nil {
		c.logger.Debug("classified",
			"app_id", id,
			"name", details.Name,
			"free", details.IsFree,
			"denuvo", hasDenuvo,
		)
	}

	supported := []bool{details.Windows, details.Mac, details.Linux}
	enabled := []bool{c.opts.Windows, c.opts.Mac, c.opts.Linux}

	var display []string
	var queuePlatforms []string
	for i, rule := range platformRules {
		if !supported[i] || !enabled[i] {
			continue
		}
		display = append(display, rule.abbrev)
		if !details.IsFree && (!hasDenuvo || !c.opts.FilterDenuvo) {
			queuePlatforms = append(queuePlatforms, rule.code)
		}
	}

	displayStr := "Unknown"
	if len(display) > 0 {
		displayStr = strings.Join(display, "/")
	}
	if hasDenuvo {
		displayStr += denuvoSuffix
	}

	name := details.Name
	if name == "" {
		name = id
	}

	return Classification{
		ID:             id,
		Name:           name,
		Display:        displayStr,
		QueuePlatforms: queuePlatforms,
		HasDenuvo:      hasDenuvo,
	}
}

func (c *Classifier) matchDenuvo(notice string) bool {
	if notice == "" {
		return false
	}
	lowered := strings.ToLower(notice)
	for _, pattern := range c.opts.DenuvoStrings {
		if pattern == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
