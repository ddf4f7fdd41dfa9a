// Package rundown contains the pure business logic for broadcast rundowns:
// the show -> blocks -> items tree, duration aggregation, live timing, and
// the status workflow.
// This is part of the Functional Core - no I/O, only pure functions.
package rundown

import (
	"github.com/example/newsroom/internal/core/ordering"
)

// Status is the rundown workflow state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusOnAir    Status = "on_air"
	StatusClosed   Status = "closed"
)

// Mode tells whether a show airs live or is recorded.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeRecorded Mode = "recorded"
)

// ItemType tags the variant of a rundown entry.
type ItemType string

const (
	ItemVT    ItemType = "VT"    // tape
	ItemREP   ItemType = "REP"   // reporter package
	ItemLive  ItemType = "LIVE"  // live segment
	ItemNote  ItemType = "NOTE"  // anchor-read note
	ItemBreak ItemType = "BREAK" // commercial or interval
)

// ItemStatus is the per-item production state.
type ItemStatus string

const (
	ItemAwaiting  ItemStatus = "awaiting"
	ItemProducing ItemStatus = "producing"
	ItemApproved  ItemStatus = "approved"
)

// Program is a recurring show template.
type Program struct {
	ID              string
	Name            string
	DefaultDuration int // seconds
	Active          bool
}

// Rundown is one instance of a program on an air date.
type Rundown struct {
	ID          string
	ProgramID   string
	ProgramName string
	AirDate     string // YYYY-MM-DD
	AirTime     string // HH:MM:SS
	Editor      string
	Presenters  []string
	Mode        Mode
	Status      Status
	Blocks      []*Block
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// Block is an ordered segment of a rundown.
type Block struct {
	ID        string
	RundownID string
	Order     int
	Seq       int64
	Title     string
	Items     []*Item
}

// Item is one on-air unit within a block.
type Item struct {
	ID          string
	BlockID     string
	Order       int
	Seq         int64
	Type        ItemType
	Title       string
	Details     string
	Talent      string
	Reporter    string
	VideoEditor string
	Source      string
	Planned     int  // seconds; missing is 0
	Real        *int // seconds; nil until the item has aired
	Status      ItemStatus
	ReportID    string
}

func (b *Block) SiblingID() string      { return b.ID }
func (b *Block) Position() (int, int64) { return b.Order, b.Seq }
func (b *Block) SetOrder(order int)     { b.Order = order }

func (i *Item) SiblingID() string      { return i.ID }
func (i *Item) Position() (int, int64) { return i.Order, i.Seq }
func (i *Item) SetOrder(order int)     { i.Order = order }

var (
	_ ordering.Sibling = (*Block)(nil)
	_ ordering.Sibling = (*Item)(nil)
)

// SortTree sorts blocks by order and each block's items by order, in place.
// Nil item lists are replaced by empty ones so a hydrated tree is never partial.
func SortTree(r *Rundown) {
	if r.Blocks == nil {
		r.Blocks = []*Block{}
	}
	ordering.Sort(r.Blocks)
	for _, b := range r.Blocks {
		if b.Items == nil {
			b.Items = []*Item{}
		}
		ordering.Sort(b.Items)
	}
}

// IsBreak reports whether the item is a commercial break.
func (i *Item) IsBreak() bool { return i.Type == ItemBreak }

// Normalize clears the fields a break does not carry and fills the default
// status for other variants.
func (i *Item) Normalize() {
	if i.IsBreak() {
		i.Talent = ""
		i.Reporter = ""
		i.VideoEditor = ""
		i.Status = ""
		return
	}
	if i.Status == "" {
		i.Status = ItemAwaiting
	}
}

// ValidStatus reports whether s is a known rundown status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusApproved, StatusOnAir, StatusClosed:
		return true
	}
	return false
}

// ValidMode reports whether m is a known mode.
func ValidMode(m Mode) bool {
	return m == ModeLive || m == ModeRecorded
}

// ValidItemType reports whether t is a known item variant.
func ValidItemType(t ItemType) bool {
	switch t {
	case ItemVT, ItemREP, ItemLive, ItemNote, ItemBreak:
		return true
	}
	return false
}

// ValidItemStatus reports whether s is a known item status.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemAwaiting, ItemProducing, ItemApproved:
		return true
	}
	return false
}

// InitialStatus returns the status of a freshly provisioned rundown.
func InitialStatus() Status {
	return StatusDraft
}

// DefaultMode returns the mode of a freshly provisioned rundown.
func DefaultMode() Mode {
	return ModeLive
}
