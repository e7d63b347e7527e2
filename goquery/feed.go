// Package goquery reads chat feeds out of rendered page HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chatwatch"
)

// Ensure FeedParser implements chatwatch.FeedParser at compile time.
var _ chatwatch.FeedParser = (*FeedParser)(nil)

// Selectors locate the parts of a message group in the feed.
// Each field is a CSS selector evaluated relative to the enclosing element.
type Selectors struct {
	// Group matches one message group (sender heading plus body).
	Group string

	// Sender is tried first; SenderFallback when Sender matches nothing.
	Sender         string
	SenderFallback string

	// Body matches the container of a message with text. BodyFallback
	// matches messages made only of glyphs. Both are evaluated against
	// the group's direct div children.
	Body         string
	BodyFallback string
}

// DefaultSelectors returns selectors for the Messenger web client.
func DefaultSelectors() Selectors {
	return Selectors{
		Group:          `div[role="gridcell"]`,
		Sender:         `h4 div[data-testid="mw_message_sender_name"]`,
		SenderFallback: `h4 > span`,
		Body:           `span > div > div > div > div`,
		BodyFallback:   `span > div > div > div`,
	}
}

// FeedParser turns a rendered chat page into a Snapshot.
type FeedParser struct {
	extractor chatwatch.FragmentExtractor
	selectors Selectors
}

// NewFeedParser creates a FeedParser that converts message markup with
// extractor and locates messages with selectors.
func NewFeedParser(extractor chatwatch.FragmentExtractor, selectors Selectors) *FeedParser {
	return &FeedParser{extractor: extractor, selectors: selectors}
}

// ParseFeed returns the messages in document order. Groups without a
// sender or a body (date separators, replies, system notices) are skipped.
func (p *FeedParser) ParseFeed(html string) (chatwatch.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, chatwatch.Errorf(chatwatch.EINVALID, "failed to parse HTML: %v", err)
	}

	snap := chatwatch.Snapshot{}
	doc.Find(p.selectors.Group).Each(func(_ int, group *goquery.Selection) {
		sender, ok := p.sender(group)
		if !ok {
			return
		}
		body, ok := p.body(group)
		if !ok {
			return
		}
		fragment, err := body.Html()
		if err != nil {
			return
		}
		snap = append(snap, chatwatch.Message{
			Sender: sender,
			Text:   p.extractor.Extract(fragment),
		})
	})

	return snap, nil
}

func (p *FeedParser) sender(group *goquery.Selection) (string, bool) {
	sel := group.Find(p.selectors.Sender).First()
	if sel.Length() == 0 {
		sel = group.Find(p.selectors.SenderFallback).First()
	}
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

func (p *FeedParser) body(group *goquery.Selection) (*goquery.Selection, bool) {
	children := group.ChildrenFiltered("div")
	sel := children.Find(p.selectors.Body).First()
	if sel.Length() == 0 {
		sel = children.Find(p.selectors.BodyFallback).First()
	}
	return sel, sel.Length() > 0
}
